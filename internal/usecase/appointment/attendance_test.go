package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
	"github.com/BruksfildServices01/therapy-scheduler/internal/testutil"
)

func seedDay(t *testing.T, f *fixture, date string, clocks ...string) {
	t.Helper()
	for _, c := range clocks {
		ap, err := domain.NewScheduled(f.serviceID, date, c)
		require.NoError(t, err)
		_, err = f.store.Appointments().Create(context.Background(), ap)
		require.NoError(t, err)
	}
}

func TestAttendance_Buckets(t *testing.T) {
	f := newFixture(t)
	seedDay(t, f, "2024-06-10", "09:00", "09:30", "15:15")
	seedDay(t, f, "2024-06-11", "09:00")

	uc := NewAttendance(f.mirror, f.notes, nil)
	require.NoError(t, uc.Load(context.Background(), "2024-06-10"))

	buckets := uc.Buckets()
	require.Len(t, buckets, 8)
	assert.Equal(t, HourBucket{Hour: "07", Label: "07:00", Count: 0, Text: "Sin citas"}, buckets[0])
	assert.Equal(t, 2, buckets[2].Count)
	assert.Equal(t, "2 citas", buckets[2].Text)
	assert.Equal(t, 1, buckets[5].Count)

	assert.Len(t, uc.Bucket("09"), 2)
	assert.Empty(t, uc.Bucket("10"))
}

func TestAttendance_StageAndSave(t *testing.T) {
	f := newFixture(t)
	seedDay(t, f, "2024-06-10", "09:00", "10:00")

	ctx := context.Background()
	uc := NewAttendance(f.mirror, f.notes, nil)
	require.NoError(t, uc.Load(ctx, "2024-06-10"))

	rows := uc.Bucket("09")
	require.Len(t, rows, 1)
	id := rows[0].ID

	require.NoError(t, uc.Stage(id, domain.StatusAttended))
	assert.True(t, uc.Bucket("09")[0].Dirty)
	assert.Empty(t, f.notes.Messages(), "staging is silent")

	res := uc.Save(ctx)
	assert.Equal(t, SaveResult{Updated: 1}, res)
	assert.Equal(t, 0, uc.Dirty())
	assert.Equal(t, 1, f.store.Calls(testutil.OpAppointmentsUpdate))

	saved, ok := f.mirror.Find(id)
	require.True(t, ok)
	assert.Equal(t, domain.StatusAttended, saved.Status)
	assert.Equal(t, "09:00:00", saved.Time)
	assert.Equal(t, 1, f.notes.Count(notify.LevelSuccess))
}

func TestAttendance_SaveWithoutChanges(t *testing.T) {
	f := newFixture(t)
	uc := NewAttendance(f.mirror, f.notes, nil)
	require.NoError(t, uc.Load(context.Background(), "2024-06-10"))

	assert.Equal(t, SaveResult{}, uc.Save(context.Background()))
	assert.Equal(t, 1, f.notes.Count(notify.LevelInfo))
	assert.Equal(t, 0, f.store.Calls(testutil.OpAppointmentsUpdate))
}

func TestAttendance_ReportsEachFailure(t *testing.T) {
	f := newFixture(t)
	seedDay(t, f, "2024-06-10", "09:00", "10:00")

	ctx := context.Background()
	uc := NewAttendance(f.mirror, f.notes, nil)
	require.NoError(t, uc.Load(ctx, "2024-06-10"))

	for _, v := range uc.Items() {
		require.NoError(t, uc.Stage(v.ID, domain.StatusMissed))
	}
	f.store.FailAfter(testutil.OpAppointmentsUpdate, 1)

	res := uc.Save(ctx)
	assert.Equal(t, SaveResult{Updated: 1, Failed: 1}, res)
	assert.Equal(t, 1, uc.Dirty())
	assert.Equal(t, 1, f.notes.Count(notify.LevelSuccess))
	assert.Equal(t, 1, f.notes.Count(notify.LevelError))
}

func TestAttendance_StageValidation(t *testing.T) {
	f := newFixture(t)
	uc := NewAttendance(f.mirror, f.notes, nil)
	require.NoError(t, uc.Load(context.Background(), "2024-06-10"))

	assert.True(t, httperr.IsBusiness(uc.Stage("missing", domain.StatusAttended), "appointment_not_found"))
	assert.True(t, httperr.IsBusiness(uc.Stage("missing", "cancelada"), "invalid_status"))
	assert.True(t, httperr.IsBusiness(uc.Load(context.Background(), "junio"), "invalid_date"))
}

func TestAttendance_NavigateSkipsWeekend(t *testing.T) {
	f := newFixture(t)
	seedDay(t, f, "2024-06-17", "08:00")

	ctx := context.Background()
	uc := NewAttendance(f.mirror, f.notes, nil)
	require.NoError(t, uc.Load(ctx, "2024-06-14"))

	require.NoError(t, uc.Navigate(ctx, 1))
	assert.Equal(t, "2024-06-17", uc.Date())
	assert.Len(t, uc.Items(), 1)

	require.NoError(t, uc.Navigate(ctx, -1))
	assert.Equal(t, "2024-06-14", uc.Date())
	assert.Empty(t, uc.Items())
}
