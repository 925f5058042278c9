// Package grid é o controlador da grade semanal (segunda a sexta × horas de
// atendimento): desenha as contagens e despacha os cliques para os fluxos de
// agendamento.
package grid

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/slots"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/usecase/appointment"
)

type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

func ParseMode(raw string) Mode {
	if Mode(raw) == ModeEdit {
		return ModeEdit
	}
	return ModeView
}

type Controller struct {
	mirror  *appointment.Mirror
	booking *appointment.SingleBooking

	anchor time.Time
	mode   Mode
}

// NewController ancora a grade na segunda-feira da semana de today.
func NewController(
	mirror *appointment.Mirror,
	booking *appointment.SingleBooking,
	today time.Time,
	mode Mode,
) *Controller {
	monday, _ := calendar.WeekRange(today)
	return &Controller{
		mirror:  mirror,
		booking: booking,
		anchor:  monday,
		mode:    mode,
	}
}

func (c *Controller) Anchor() time.Time { return c.anchor }
func (c *Controller) Mode() Mode        { return c.mode }

// Load busca a semana ancorada no espelho.
func (c *Controller) Load(ctx context.Context) {
	monday, friday := calendar.WeekRange(c.anchor)
	c.mirror.Fetch(ctx, calendar.FormatDate(monday), calendar.FormatDate(friday))
}

// ======================================================
// RENDER
// ======================================================

type DayColumn struct {
	Label     string `json:"label"`
	Date      string `json:"fecha"`
	DayNumber int    `json:"dia"`
	Count     int    `json:"citas"`
}

type Cell struct {
	Date  string `json:"fecha"`
	Count int    `json:"citas"`
}

type HourRow struct {
	Hour  string `json:"hora"`
	Label string `json:"label"`
	Cells []Cell `json:"celdas"`
}

type WeekGrid struct {
	Mode  Mode        `json:"mode"`
	Start string      `json:"start"`
	End   string      `json:"end"`
	Days  []DayColumn `json:"dias"`
	Rows  []HourRow   `json:"horas"`
}

func (c *Controller) index() slots.Index {
	return slots.Build(c.mirror.Items())
}

func (c *Controller) Render() WeekGrid {
	ix := c.index()
	monday, friday := calendar.WeekRange(c.anchor)

	g := WeekGrid{
		Mode:  c.mode,
		Start: calendar.FormatDate(monday),
		End:   calendar.FormatDate(friday),
	}

	dates := make([]string, len(calendar.WeekdayLabels))
	for i, label := range calendar.WeekdayLabels {
		day := monday.AddDate(0, 0, i)
		dates[i] = calendar.FormatDate(day)
		g.Days = append(g.Days, DayColumn{
			Label:     label,
			Date:      dates[i],
			DayNumber: day.Day(),
			Count:     ix.DayCount(dates[i]),
		})
	}

	for _, h := range domain.AllowedHours {
		row := HourRow{Hour: h, Label: h + ":00"}
		for _, d := range dates {
			row.Cells = append(row.Cells, Cell{Date: d, Count: ix.SlotCount(d, h)})
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// ======================================================
// INTENTS
// ======================================================

type IntentKind string

const (
	IntentCellClick      IntentKind = "cell_click"
	IntentDayHeaderClick IntentKind = "day_header_click"
	IntentToggleMode     IntentKind = "toggle_mode"
	IntentShiftWeek      IntentKind = "shift_week"
)

type Intent struct {
	Kind   IntentKind `json:"kind"`
	Day    string     `json:"day"`
	Hour   string     `json:"hour"`
	Offset int        `json:"offset"`
}

// CellDetail é a lista de citas de uma célula (modo visualização).
type CellDetail struct {
	Date         string        `json:"fecha"`
	Hour         string        `json:"hora"`
	Appointments []domain.View `json:"citas"`
}

// DayDetail é a lista de citas de um dia (clique no cabeçalho).
type DayDetail struct {
	Label        string        `json:"label"`
	Date         string        `json:"fecha"`
	Appointments []domain.View `json:"citas"`
}

type Outcome struct {
	Cell *CellDetail              `json:"cell,omitempty"`
	Day  *DayDetail               `json:"day,omitempty"`
	Form *appointment.BookingForm `json:"form,omitempty"`
	Grid *WeekGrid                `json:"grid,omitempty"`
}

func (c *Controller) Dispatch(ctx context.Context, in Intent) (Outcome, error) {
	switch in.Kind {
	case IntentCellClick:
		return c.cellClick(in.Day, in.Hour)

	case IntentDayHeaderClick:
		date, err := calendar.DateForWeekday(c.anchor, in.Day)
		if err != nil {
			return Outcome{}, httperr.ErrBusiness("invalid_day")
		}
		return Outcome{Day: &DayDetail{
			Label:        in.Day,
			Date:         date,
			Appointments: c.index().Day(date),
		}}, nil

	case IntentToggleMode:
		if c.mode == ModeEdit {
			c.mode = ModeView
		} else {
			c.mode = ModeEdit
		}
		g := c.Render()
		return Outcome{Grid: &g}, nil

	case IntentShiftWeek:
		c.anchor = calendar.ShiftWeek(c.anchor, in.Offset)
		c.Load(ctx)
		g := c.Render()
		return Outcome{Grid: &g}, nil
	}

	return Outcome{}, httperr.ErrBusiness("invalid_intent")
}

func (c *Controller) cellClick(day, hour string) (Outcome, error) {
	date, err := calendar.DateForWeekday(c.anchor, day)
	if err != nil {
		return Outcome{}, httperr.ErrBusiness("invalid_day")
	}
	if !domain.IsAllowedHour(hour) {
		return Outcome{}, httperr.ErrBusiness("hour_not_allowed")
	}

	if c.mode == ModeEdit {
		c.booking.Open(date, hour)
		form := c.booking.Form()
		return Outcome{Form: &form}, nil
	}

	return Outcome{Cell: &CellDetail{
		Date:         date,
		Hour:         hour,
		Appointments: c.index().Slot(date, hour),
	}}, nil
}
