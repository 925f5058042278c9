// Package slots deriva os índices da agenda a partir do espelho de citas.
package slots

import (
	"sort"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
)

// Key identifica uma célula da grade: data + prefixo de hora ("09").
type Key struct {
	Date string
	Hour string
}

// Index guarda as citas por célula e por dia, na ordem recebida do store.
type Index struct {
	bySlot map[Key][]appointment.View
	byDay  map[string][]appointment.View
	total  int
}

func Build(views []appointment.View) Index {
	ix := Index{
		bySlot: make(map[Key][]appointment.View),
		byDay:  make(map[string][]appointment.View),
		total:  len(views),
	}

	for _, v := range views {
		k := Key{Date: v.Date, Hour: appointment.HourBucket(v.Time)}
		ix.bySlot[k] = append(ix.bySlot[k], v)
		ix.byDay[v.Date] = append(ix.byDay[v.Date], v)
	}
	return ix
}

func (ix Index) Slot(date, hour string) []appointment.View {
	return ix.bySlot[Key{Date: date, Hour: hour}]
}

func (ix Index) SlotCount(date, hour string) int {
	return len(ix.bySlot[Key{Date: date, Hour: hour}])
}

func (ix Index) Day(date string) []appointment.View {
	return ix.byDay[date]
}

func (ix Index) DayCount(date string) int {
	return len(ix.byDay[date])
}

func (ix Index) Total() int {
	return ix.total
}

// ===============================
// Tallies
// ===============================

type Tally struct {
	Scheduled int `json:"programada"`
	Attended  int `json:"asistio"`
	Missed    int `json:"no_asistio"`
	Total     int `json:"total"`
}

func CountByStatus(views []appointment.View) Tally {
	var t Tally
	for _, v := range views {
		switch v.Status {
		case appointment.StatusScheduled:
			t.Scheduled++
		case appointment.StatusAttended:
			t.Attended++
		case appointment.StatusMissed:
			t.Missed++
		}
		t.Total++
	}
	return t
}

// ===============================
// Service history
// ===============================

type ServiceHistory struct {
	Service   string             `json:"servicio"`
	Label     string             `json:"label"`
	Sessions  int                `json:"sesiones"`
	StartDate string             `json:"fecha_inicio"`
	Entries   []appointment.View `json:"citas"`
}

// History agrupa as citas do paciente por tipo de serviço. Cada grupo traz as
// entradas da mais recente para a mais antiga; StartDate é a mais antiga.
func History(views []appointment.View, clientID string, label func(string) string) []ServiceHistory {
	groups := map[string]*ServiceHistory{}
	var order []string

	for _, v := range views {
		if v.ClientID != clientID {
			continue
		}
		g, ok := groups[v.Service]
		if !ok {
			g = &ServiceHistory{Service: v.Service, Label: v.Service}
			if label != nil {
				g.Label = label(v.Service)
			}
			groups[v.Service] = g
			order = append(order, v.Service)
		}
		g.Entries = append(g.Entries, v)
	}

	out := make([]ServiceHistory, 0, len(order))
	for _, s := range order {
		g := groups[s]
		sort.SliceStable(g.Entries, func(i, j int) bool {
			a, b := g.Entries[i], g.Entries[j]
			if a.Date != b.Date {
				return a.Date > b.Date
			}
			return a.Time > b.Time
		})
		g.Sessions = len(g.Entries)
		g.StartDate = g.Entries[len(g.Entries)-1].Date
		out = append(out, *g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate < out[j].StartDate
	})
	return out
}
