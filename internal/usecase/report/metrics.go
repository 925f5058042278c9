package report

import (
	"context"
	"time"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/slots"
	"github.com/BruksfildServices01/therapy-scheduler/internal/dto"
)

type Metrics struct {
	appointments appointment.Repository
	clients      client.Repository
	loc          *time.Location
}

func NewMetrics(
	appointments appointment.Repository,
	clients client.Repository,
	loc *time.Location,
) *Metrics {
	if loc == nil {
		loc = time.UTC
	}
	return &Metrics{
		appointments: appointments,
		clients:      clients,
		loc:          loc,
	}
}

func (uc *Metrics) Execute(ctx context.Context, now time.Time) (*dto.MetricsDTO, error) {
	today := calendar.Day(now.In(uc.loc))
	monday, friday := calendar.WeekRange(today)
	first, last := calendar.MonthRange(today.Year(), today.Month(), uc.loc)

	// uma busca cobre semana e mês (a semana pode cruzar a virada do mês)
	start, end := first, last
	if monday.Before(start) {
		start = monday
	}
	if friday.After(end) {
		end = friday
	}

	rows, err := uc.appointments.ListByRange(ctx, calendar.FormatDate(start), calendar.FormatDate(end))
	if err != nil {
		return nil, err
	}
	views, err := appointment.FromModels(rows)
	if err != nil {
		return nil, err
	}

	todayKey := calendar.FormatDate(today)
	weekStart, weekEnd := calendar.FormatDate(monday), calendar.FormatDate(friday)
	monthStart, monthEnd := calendar.FormatDate(first), calendar.FormatDate(last)

	var week, month []appointment.View
	out := &dto.MetricsDTO{}
	for _, v := range views {
		if v.Date == todayKey {
			out.Today++
		}
		if v.Date >= weekStart && v.Date <= weekEnd {
			week = append(week, v)
		}
		if v.Date >= monthStart && v.Date <= monthEnd {
			month = append(month, v)
		}
	}
	out.Week = statusCount(slots.CountByStatus(week))
	out.Month = statusCount(slots.CountByStatus(month))

	clients, err := uc.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		reason := client.Reason(c.Reason)
		countReason(&out.Patients, reason)

		created := calendar.FormatDate(c.CreatedAt.In(uc.loc))
		if created >= weekStart && created <= calendar.FormatDate(monday.AddDate(0, 0, 6)) {
			countReason(&out.NewPatientWeek, reason)
		}
		if created >= monthStart && created <= monthEnd {
			countReason(&out.NewPatientMon, reason)
		}
	}

	return out, nil
}

func statusCount(t slots.Tally) dto.StatusCountDTO {
	return dto.StatusCountDTO{
		Scheduled: t.Scheduled,
		Attended:  t.Attended,
		Missed:    t.Missed,
		Total:     t.Total,
	}
}

func countReason(c *dto.ReasonCountDTO, r client.Reason) {
	switch r {
	case client.ReasonTherapy:
		c.Therapy++
	case client.ReasonAssessment:
		c.Assessment++
	}
	c.Total++
}
