package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

func TestSort(t *testing.T) {
	base := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	list := []models.Notice{
		{ID: 1, Priority: "baja", CreatedAt: base},
		{ID: 2, Priority: "urgente", CreatedAt: base.Add(3 * time.Hour)},
		{ID: 3, Priority: "alta", CreatedAt: base},
		{ID: 4, Priority: "alta", CreatedAt: base.Add(time.Hour)},
		{ID: 5, Priority: "media", CreatedAt: base},
	}

	Sort(list)

	var ids []uint
	for _, n := range list {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []uint{4, 3, 5, 1, 2}, ids)
}

func TestDraftValidate(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	ok := Draft{Title: "Cierre", Body: "Festivo", Priority: PriorityHigh, ExpiresAt: now.Add(24 * time.Hour)}

	assert.NoError(t, ok.Validate(now))

	past := ok
	past.ExpiresAt = now.Add(-time.Minute)
	assert.True(t, httperr.IsBusiness(past.Validate(now), "invalid_expiration"))

	noTitle := ok
	noTitle.Title = "  "
	assert.True(t, httperr.IsBusiness(noTitle.Validate(now), "missing_title"))

	badPriority := ok
	badPriority.Priority = "urgente"
	assert.True(t, httperr.IsBusiness(badPriority.Validate(now), "invalid_priority"))
}
