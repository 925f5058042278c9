package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
)

func view(id, client, service, date, clock string, status appointment.Status) appointment.View {
	return appointment.View{
		ID:       id,
		ClientID: client,
		Service:  service,
		Date:     date,
		Time:     clock,
		Status:   status,
	}
}

func TestBuild_IndexesBySlotAndDay(t *testing.T) {
	views := []appointment.View{
		view("a", "1", "terapia_fisica", "2024-06-10", "09:00:00", appointment.StatusScheduled),
		view("b", "2", "terapia_fisica", "2024-06-10", "09:45:00", appointment.StatusScheduled),
		view("c", "1", "terapia_fisica", "2024-06-10", "14:00:00", appointment.StatusAttended),
		view("d", "3", "valoracion", "2024-06-11", "09:00:00", appointment.StatusMissed),
	}

	ix := Build(views)

	assert.Equal(t, 2, ix.SlotCount("2024-06-10", "09"))
	assert.Equal(t, 1, ix.SlotCount("2024-06-10", "14"))
	assert.Equal(t, 0, ix.SlotCount("2024-06-10", "10"))
	assert.Equal(t, 3, ix.DayCount("2024-06-10"))
	assert.Equal(t, 1, ix.DayCount("2024-06-11"))
	assert.Equal(t, 4, ix.Total())

	slot := ix.Slot("2024-06-10", "09")
	require.Len(t, slot, 2)
	assert.Equal(t, "a", slot[0].ID)
	assert.Equal(t, "b", slot[1].ID)
}

func TestCountByStatus(t *testing.T) {
	views := []appointment.View{
		view("a", "1", "x", "2024-06-10", "09:00:00", appointment.StatusScheduled),
		view("b", "1", "x", "2024-06-10", "09:00:00", appointment.StatusAttended),
		view("c", "1", "x", "2024-06-10", "09:00:00", appointment.StatusAttended),
		view("d", "1", "x", "2024-06-10", "09:00:00", appointment.StatusMissed),
	}

	assert.Equal(t, Tally{Scheduled: 1, Attended: 2, Missed: 1, Total: 4}, CountByStatus(views))
}

func TestHistory(t *testing.T) {
	views := []appointment.View{
		view("a", "1", "terapia_fisica", "2024-06-12", "09:00:00", appointment.StatusAttended),
		view("b", "1", "terapia_fisica", "2024-06-10", "09:00:00", appointment.StatusAttended),
		view("c", "1", "valoracion", "2024-06-03", "08:00:00", appointment.StatusAttended),
		view("d", "2", "terapia_fisica", "2024-06-10", "10:00:00", appointment.StatusScheduled),
		view("e", "1", "terapia_fisica", "2024-06-14", "15:00:00", appointment.StatusScheduled),
	}

	got := History(views, "1", func(s string) string { return "L-" + s })
	require.Len(t, got, 2)

	assert.Equal(t, "valoracion", got[0].Service)
	assert.Equal(t, 1, got[0].Sessions)

	tf := got[1]
	assert.Equal(t, "terapia_fisica", tf.Service)
	assert.Equal(t, "L-terapia_fisica", tf.Label)
	assert.Equal(t, 3, tf.Sessions)
	assert.Equal(t, "2024-06-10", tf.StartDate)
	assert.Equal(t, []string{"e", "a", "b"}, []string{tf.Entries[0].ID, tf.Entries[1].ID, tf.Entries[2].ID})
}

func TestHistory_NoAppointments(t *testing.T) {
	assert.Empty(t, History(nil, "1", nil))
}
