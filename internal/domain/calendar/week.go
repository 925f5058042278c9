package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout é o formato de data usado no banco e na API.
const DateLayout = "2006-01-02"

// WeekdayLabels são as colunas da grade, começando na segunda.
var WeekdayLabels = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}

var weekdayAliases = map[string]int{
	"lunes":     0,
	"martes":    1,
	"miércoles": 2,
	"miercoles": 2,
	"jueves":    3,
	"viernes":   4,
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
}

// Day trunca t para a meia-noite, mantendo os campos de calendário e o fuso.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange devolve a segunda e a sexta da semana de anchor.
// Domingo pertence à semana que terminou (volta para a segunda anterior).
func WeekRange(anchor time.Time) (monday, friday time.Time) {
	base := Day(anchor)

	dow := int(base.Weekday())
	offset := 1 - dow
	if dow == 0 {
		offset = -6
	}

	monday = base.AddDate(0, 0, offset)
	friday = monday.AddDate(0, 0, 4)
	return monday, friday
}

// WeekdayIndex resolve o rótulo da coluna (espanhol ou inglês) para 0..4.
func WeekdayIndex(label string) (int, bool) {
	idx, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(label))]
	return idx, ok
}

// DateForWeekday devolve a data YYYY-MM-DD do dia rotulado na semana de anchor.
func DateForWeekday(anchor time.Time, label string) (string, error) {
	idx, ok := WeekdayIndex(label)
	if !ok {
		return "", fmt.Errorf("unknown weekday %q", label)
	}

	monday, _ := WeekRange(anchor)
	return FormatDate(monday.AddDate(0, 0, idx)), nil
}

// ShiftWeek desloca anchor em offset semanas inteiras.
func ShiftWeek(anchor time.Time, offset int) time.Time {
	return Day(anchor).AddDate(0, 0, 7*offset)
}

// IsWeekend indica se t cai num sábado ou domingo.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NextWorkday anda um dia na direção dir (+1 / -1), pulando fins de semana.
func NextWorkday(t time.Time, dir int) time.Time {
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}

	next := Day(t).AddDate(0, 0, dir)
	for IsWeekend(next) {
		next = next.AddDate(0, 0, dir)
	}
	return next
}

// MonthRange devolve o primeiro e o último dia do mês.
func MonthRange(year int, month time.Month, loc *time.Location) (first, last time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	first = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// MonthDays lista todos os dias do mês, em ordem.
func MonthDays(year int, month time.Month, loc *time.Location) []time.Time {
	first, last := MonthRange(year, month, loc)

	days := make([]time.Time, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FormatDate escreve t como YYYY-MM-DD pelos próprios campos de calendário,
// sem converter para UTC.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate lê YYYY-MM-DD como meia-noite em loc (UTC quando nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}
