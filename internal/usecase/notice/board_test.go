package notice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/notice"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
	"github.com/BruksfildServices01/therapy-scheduler/internal/testutil"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func TestBoardLoad_PurgesThenSorts(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedNotice(models.Notice{Title: "viejo", Priority: "alta", ExpiresAt: now.Add(-time.Hour)})
	store.SeedNotice(models.Notice{Title: "baja", Priority: "baja", ExpiresAt: now.Add(time.Hour)})
	store.SeedNotice(models.Notice{Title: "alta", Priority: "alta", ExpiresAt: now.Add(time.Hour)})

	b := NewBoard(store.Notices(), zap.NewNop(), notify.NewCollector(), clock)
	require.True(t, b.Load(context.Background()))

	items := b.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "alta", items[0].Title)
	assert.Equal(t, "baja", items[1].Title)
}

func TestBoardLoad_PurgeFailureStillLists(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedNotice(models.Notice{Title: "a", Priority: "media", ExpiresAt: now.Add(time.Hour)})
	store.FailOn(testutil.OpNoticesPurge, nil)

	b := NewBoard(store.Notices(), zap.NewNop(), notify.NewCollector(), clock)
	assert.True(t, b.Load(context.Background()))
	assert.Len(t, b.Items(), 1)
}

func TestBoardCreateAndDelete(t *testing.T) {
	store := testutil.NewMemStore()
	notes := notify.NewCollector()
	b := NewBoard(store.Notices(), zap.NewNop(), notes, clock)
	ctx := context.Background()

	assert.False(t, b.Create(ctx, domain.Draft{Title: "x", Body: "y", Priority: domain.PriorityLow, ExpiresAt: now}))
	assert.Equal(t, 0, store.Calls(testutil.OpNoticesCreate))

	require.True(t, b.Create(ctx, domain.Draft{
		Title:     "Cierre",
		Body:      "Festivo el lunes",
		Priority:  domain.PriorityHigh,
		ExpiresAt: now.Add(48 * time.Hour),
	}))
	items := b.Items()
	require.Len(t, items, 1)

	require.True(t, b.Delete(ctx, items[0].ID))
	assert.Empty(t, b.Items())
	assert.False(t, b.Delete(ctx, items[0].ID))

	assert.Equal(t, 2, notes.Count(notify.LevelSuccess))
	assert.Equal(t, 2, notes.Count(notify.LevelError))
}
