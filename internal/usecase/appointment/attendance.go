package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/slots"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
)

// HourBucket é uma das horas fixas do dia na tela de asistencia.
type HourBucket struct {
	Hour  string `json:"hora"`
	Label string `json:"label"`
	Count int    `json:"citas"`
	Text  string `json:"texto"`
}

// AttendanceRow é uma cita com o status em edição.
type AttendanceRow struct {
	domain.View
	Staged domain.Status `json:"estado_editado"`
	Dirty  bool          `json:"modificado"`
}

type SaveResult struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Attendance carrega um único dia com busca própria, independente da janela
// semanal, e grava só as citas alteradas.
type Attendance struct {
	mirror   *Mirror
	notifier notify.Notifier
	audit    audit.Sink

	date   string
	staged map[string]domain.Status
}

func NewAttendance(mirror *Mirror, notifier notify.Notifier, sink audit.Sink) *Attendance {
	if sink == nil {
		sink = audit.Nop{}
	}
	return &Attendance{
		mirror:   mirror,
		notifier: notifier,
		audit:    sink,
		staged:   map[string]domain.Status{},
	}
}

func (uc *Attendance) Load(ctx context.Context, date string) error {
	day, err := calendar.ParseDate(date, time.UTC)
	if err != nil {
		return httperr.ErrBusiness("invalid_date")
	}
	uc.date = calendar.FormatDate(day)
	uc.staged = map[string]domain.Status{}
	uc.mirror.Fetch(ctx, uc.date, uc.date)
	return nil
}

func (uc *Attendance) Date() string {
	return uc.date
}

func (uc *Attendance) Items() []domain.View {
	var out []domain.View
	for _, v := range uc.mirror.Items() {
		if v.Date == uc.date {
			out = append(out, v)
		}
	}
	return out
}

func (uc *Attendance) Buckets() []HourBucket {
	ix := slots.Build(uc.Items())

	out := make([]HourBucket, 0, len(domain.AllowedHours))
	for _, h := range domain.AllowedHours {
		n := ix.SlotCount(uc.date, h)
		text := "Sin citas"
		if n == 1 {
			text = "1 cita"
		} else if n > 1 {
			text = fmt.Sprintf("%d citas", n)
		}
		out = append(out, HourBucket{Hour: h, Label: h + ":00", Count: n, Text: text})
	}
	return out
}

// Bucket lista as citas de uma hora com o status em edição aplicado.
func (uc *Attendance) Bucket(hour string) []AttendanceRow {
	ix := slots.Build(uc.Items())

	var out []AttendanceRow
	for _, v := range ix.Slot(uc.date, hour) {
		row := AttendanceRow{View: v, Staged: v.Status}
		if s, ok := uc.staged[v.ID]; ok {
			row.Staged = s
			row.Dirty = true
		}
		out = append(out, row)
	}
	return out
}

// Stage marca a cita como alterada; nada é gravado até Save.
func (uc *Attendance) Stage(id string, status domain.Status) error {
	if !status.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if _, ok := uc.mirror.Find(id); !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	uc.staged[id] = status
	return nil
}

func (uc *Attendance) Dirty() int {
	return len(uc.staged)
}

// Save atualiza cada cita alterada individualmente, reportando cada uma, e
// recarrega o dia ao final.
func (uc *Attendance) Save(ctx context.Context) SaveResult {
	var res SaveResult

	if len(uc.staged) == 0 {
		uc.notifier.Info("No hay cambios para guardar")
		return res
	}

	for _, v := range uc.Items() {
		status, ok := uc.staged[v.ID]
		if !ok {
			continue
		}

		date, clock, serviceID := v.Date, v.Time, v.ClientServiceID
		_, saved := uc.mirror.Update(ctx, v.ID, domain.Changes{
			Date:            &date,
			Time:            &clock,
			Status:          &status,
			ClientServiceID: &serviceID,
		})
		if !saved {
			res.Failed++
			uc.notifier.Error("attendance_not_saved", fmt.Sprintf(
				"No se pudo actualizar la cita de %s (%s)", v.ClientName, domain.Format12h(v.Time),
			))
			continue
		}

		res.Updated++
		delete(uc.staged, v.ID)
		uc.notifier.Success(fmt.Sprintf(
			"%s: %s", v.ClientName, status.Label(),
		))
	}

	uc.mirror.Refetch(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "attendance_saved",
		Entity:   "fecha",
		EntityID: uc.date,
		Metadata: res,
	})
	return res
}

// Navigate avança ou recua um dia útil e carrega o novo dia.
func (uc *Attendance) Navigate(ctx context.Context, dir int) error {
	day, err := calendar.ParseDate(uc.date, time.UTC)
	if err != nil {
		return httperr.ErrBusiness("invalid_date")
	}
	return uc.Load(ctx, calendar.FormatDate(calendar.NextWorkday(day, dir)))
}
