package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
)

const (
	MinBatchQuantity = 1
	MaxBatchQuantity = 10
)

// Entry é uma cita na fila do lote.
type Entry struct {
	Date   string `json:"fecha"`
	Hour   string `json:"hora"`
	Minute string `json:"minuto"`
}

func (e Entry) Clock() (string, error) {
	return domain.ManualTime(e.Hour, e.Minute)
}

// Draft é o estado do agendamento em lote de um paciente.
type Draft struct {
	ClientID  string     `json:"cliente_id"`
	Quantity  int        `json:"cantidad"`
	ServiceID string     `json:"clientes_servicio_id"`
	Year      int        `json:"anio"`
	Month     time.Month `json:"mes"`
	Entries   []Entry    `json:"citas"`
}

func NewDraft(clientID string, today time.Time) *Draft {
	return &Draft{
		ClientID: clientID,
		Quantity: MinBatchQuantity,
		Year:     today.Year(),
		Month:    today.Month(),
	}
}

// SetQuantity muda N; diminuir abaixo da fila corta as entradas do final.
func (d *Draft) SetQuantity(n int) error {
	if n < MinBatchQuantity || n > MaxBatchQuantity {
		return httperr.ErrBusiness("invalid_quantity")
	}
	d.Quantity = n
	if len(d.Entries) > n {
		d.Entries = d.Entries[:n]
	}
	return nil
}

func (d *Draft) SetService(serviceID string) {
	d.ServiceID = serviceID
}

func (d *Draft) CountOn(date string) int {
	n := 0
	for _, e := range d.Entries {
		if e.Date == date {
			n++
		}
	}
	return n
}

// Toggle aplica o clique num dia do calendário. Fins de semana não entram.
func (d *Draft) Toggle(date string) (ToggleAction, error) {
	day, err := calendar.ParseDate(date, time.UTC)
	if err != nil {
		return ToggleNone, httperr.ErrBusiness("invalid_date")
	}
	if calendar.IsWeekend(day) {
		return ToggleNone, nil
	}
	date = calendar.FormatDate(day)

	_, action := Transition(StateOf(d.CountOn(date)), len(d.Entries), d.Quantity)

	switch action {
	case ToggleAddOne:
		h, m := domain.DefaultSlotTime()
		d.Entries = append(d.Entries, Entry{Date: date, Hour: h, Minute: m})
	case ToggleRemoveOne, ToggleRemoveAll:
		d.removeDay(date)
	}
	return action, nil
}

func (d *Draft) removeDay(date string) {
	kept := d.Entries[:0]
	for _, e := range d.Entries {
		if e.Date != date {
			kept = append(kept, e)
		}
	}
	d.Entries = kept
}

// SetEntryTime edita hora/minuto de uma entrada dentro dos conjuntos fixos.
func (d *Draft) SetEntryTime(index int, hour, minute string) error {
	if index < 0 || index >= len(d.Entries) {
		return httperr.ErrBusiness("entry_not_found")
	}
	if _, err := domain.ManualTime(hour, minute); err != nil {
		return err
	}
	d.Entries[index].Hour = hour
	d.Entries[index].Minute = minute
	return nil
}

func (d *Draft) ShiftMonth(delta int) {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	d.Year = first.Year()
	d.Month = first.Month()
}

// CalendarDay é uma casa do calendário mensal do lote.
type CalendarDay struct {
	Date     string `json:"fecha"`
	Day      int    `json:"dia"`
	Weekday  int    `json:"dia_semana"`
	Queued   int    `json:"citas"`
	Disabled bool   `json:"deshabilitado"`
}

func (d *Draft) MonthDays() []CalendarDay {
	days := calendar.MonthDays(d.Year, d.Month, time.UTC)
	total := len(d.Entries)

	out := make([]CalendarDay, 0, len(days))
	for _, day := range days {
		date := calendar.FormatDate(day)
		queued := d.CountOn(date)
		out = append(out, CalendarDay{
			Date:     date,
			Day:      day.Day(),
			Weekday:  int(day.Weekday()),
			Queued:   queued,
			Disabled: calendar.IsWeekend(day) || (queued == 0 && total >= d.Quantity),
		})
	}
	return out
}

// ======================================================
// Persistência do rascunho
// ======================================================

var ErrDraftNotFound = errors.New("batch draft not found")

// DraftStore guarda o rascunho entre chamadas HTTP.
type DraftStore interface {
	Load(ctx context.Context, key string) (*Draft, error)
	Save(ctx context.Context, key string, d *Draft) error
	Delete(ctx context.Context, key string) error
}

func DraftKey(actor uint, clientID string) string {
	return fmt.Sprintf("batch:%d:%s", actor, clientID)
}
