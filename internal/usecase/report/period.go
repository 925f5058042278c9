package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
)

type Mode string

const (
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
	ModeDay   Mode = "day"
)

var monthNames = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// Period é o intervalo inclusivo de uma ficha de seguimento.
type Period struct {
	Mode     Mode
	Start    string
	End      string
	Title    string
	FileName string
}

// WeekPeriod cobre segunda a sexta da semana de anchor.
func WeekPeriod(anchor time.Time) Period {
	monday, friday := calendar.WeekRange(anchor)
	return Period{
		Mode:  ModeWeek,
		Start: calendar.FormatDate(monday),
		End:   calendar.FormatDate(friday),
		Title: fmt.Sprintf("SEGUIMIENTO SEMANAL DE CITAS - %s AL %s",
			displayDate(monday), displayDate(friday)),
		FileName: fmt.Sprintf("seguimiento_semana_%s.pdf", calendar.FormatDate(monday)),
	}
}

func MonthPeriod(year int, month time.Month) (Period, error) {
	if month < time.January || month > time.December || year < 2000 {
		return Period{}, httperr.ErrBusiness("invalid_month")
	}
	first, last := calendar.MonthRange(year, month, time.UTC)
	return Period{
		Mode:     ModeMonth,
		Start:    calendar.FormatDate(first),
		End:      calendar.FormatDate(last),
		Title:    fmt.Sprintf("SEGUIMIENTO MENSUAL DE CITAS - %s %d", strings.ToUpper(MonthName(month)), year),
		FileName: fmt.Sprintf("seguimiento_%04d_%02d.pdf", year, int(month)),
	}, nil
}

func DayPeriod(day time.Time) Period {
	date := calendar.FormatDate(day)
	return Period{
		Mode:     ModeDay,
		Start:    date,
		End:      date,
		Title:    fmt.Sprintf("SEGUIMIENTO DE CITAS - %s", strings.ToUpper(longDate(day))),
		FileName: fmt.Sprintf("seguimiento_%s.pdf", date),
	}
}

// displayDate usa o formato dd/mm/aaaa da ficha impressa.
func displayDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}

var weekdayNames = []string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

func longDate(t time.Time) string {
	return fmt.Sprintf("%s %d de %s de %d",
		weekdayNames[t.Weekday()], t.Day(), MonthName(t.Month()), t.Year())
}
