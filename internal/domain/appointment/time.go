package appointment

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
)

// Horas de atendimento (manhã e tarde) e minutos permitidos na entrada manual.
var (
	AllowedHours   = []string{"07", "08", "09", "10", "14", "15", "16", "17"}
	AllowedMinutes = []string{"00", "15", "30", "45"}
)

// DefaultSlotTime é o horário inicial de cada entrada nova do agendamento em lote.
func DefaultSlotTime() (hour, minute string) {
	return AllowedHours[0], AllowedMinutes[0]
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func IsAllowedHour(h string) bool {
	return contains(AllowedHours, h)
}

func IsAllowedMinute(m string) bool {
	return contains(AllowedMinutes, m)
}

// NormalizeTime garante o formato HH:MM:SS usado no armazenamento.
// Aceita "H:MM", "HH:MM" e "HH:MM:SS".
func NormalizeTime(raw string) (string, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", httperr.ErrBusiness("invalid_time")
	}
	if len(parts) == 2 {
		parts = append(parts, "00")
	}

	var h, m, s int
	if _, err := fmt.Sscanf(strings.Join(parts, " "), "%d %d %d", &h, &m, &s); err != nil {
		return "", httperr.ErrBusiness("invalid_time")
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return "", httperr.ErrBusiness("invalid_time")
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

// ManualTime monta HH:MM a partir dos conjuntos fixos de hora e minuto.
func ManualTime(hour, minute string) (string, error) {
	if !IsAllowedHour(hour) {
		return "", httperr.ErrBusiness("hour_not_allowed")
	}
	if !IsAllowedMinute(minute) {
		return "", httperr.ErrBusiness("minute_not_allowed")
	}
	return hour + ":" + minute, nil
}

// SlotTime normaliza a hora e exige que caia numa franja de atendimento.
// Os segundos precisam ser zero.
func SlotTime(raw string) (string, error) {
	norm, err := NormalizeTime(raw)
	if err != nil {
		return "", err
	}
	if _, err := ManualTime(norm[:2], norm[3:5]); err != nil {
		return "", err
	}
	if norm[6:] != "00" {
		return "", httperr.ErrBusiness("minute_not_allowed")
	}
	return norm, nil
}

// HourBucket é o prefixo de duas posições da hora ("09:30:00" -> "09").
func HourBucket(t string) string {
	t = strings.TrimSpace(t)
	if len(t) < 2 {
		return ""
	}
	if t[1] == ':' {
		return "0" + t[:1]
	}
	return t[:2]
}

// Format12h exibe a hora em 24h seguida de "a.m"/"p.m" ("09:30 a.m",
// "14:15 p.m"), como na ficha de seguimento.
func Format12h(t string) string {
	norm, err := NormalizeTime(t)
	if err != nil {
		return t
	}
	period := "a.m"
	if norm[:2] >= "12" {
		period = "p.m"
	}
	return norm[:5] + " " + period
}
