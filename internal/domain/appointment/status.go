package appointment

import (
	"strings"

	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "programada"
	StatusAttended  Status = "asistio"
	StatusMissed    Status = "no-asistio"
)

var statusLabels = map[Status]string{
	StatusScheduled: "Programada",
	StatusAttended:  "Asistió",
	StatusMissed:    "No Asistió",
}

// Statuses em ordem de exibição no seletor de asistencia.
var Statuses = []Status{StatusScheduled, StatusAttended, StatusMissed}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus normaliza variações ("No asistio", "no asistio") antes de validar.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "-"))
	s = Status(strings.ReplaceAll(string(s), "ó", "o"))
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

// ===============================
// Validations
// ===============================

// InitialStatus de toda cita criada por um fluxo de agendamento.
func InitialStatus() Status {
	return StatusScheduled
}

// IsAttendanceOutcome indica se o status fecha a cita (asistio / no-asistio).
func IsAttendanceOutcome(s Status) bool {
	return s == StatusAttended || s == StatusMissed
}
