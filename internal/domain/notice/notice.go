package notice

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

type Priority string

const (
	PriorityHigh   Priority = "alta"
	PriorityMedium Priority = "media"
	PriorityLow    Priority = "baja"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Rank ordena alta < media < baja; prioridades desconhecidas vão ao final.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Sort ordena o quadro por prioridade e, dentro dela, do mais recente ao mais antigo.
func Sort(list []models.Notice) {
	sort.SliceStable(list, func(i, j int) bool {
		ri := Priority(list[i].Priority).Rank()
		rj := Priority(list[j].Priority).Rank()
		if ri != rj {
			return ri < rj
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// Draft é o formulário de novo aviso.
type Draft struct {
	Title     string
	Body      string
	Priority  Priority
	ExpiresAt time.Time
}

func (d Draft) Validate(now time.Time) error {
	if strings.TrimSpace(d.Title) == "" {
		return httperr.ErrBusiness("missing_title")
	}
	if strings.TrimSpace(d.Body) == "" {
		return httperr.ErrBusiness("missing_body")
	}
	if !d.Priority.Valid() {
		return httperr.ErrBusiness("invalid_priority")
	}
	if d.ExpiresAt.IsZero() || !d.ExpiresAt.After(now) {
		return httperr.ErrBusiness("invalid_expiration")
	}
	return nil
}

func (d Draft) Model() *models.Notice {
	return &models.Notice{
		Title:     strings.TrimSpace(d.Title),
		Body:      strings.TrimSpace(d.Body),
		Priority:  string(d.Priority),
		ExpiresAt: d.ExpiresAt,
	}
}

// Repository é o acesso à coleção avisos.
type Repository interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	List(ctx context.Context) ([]models.Notice, error)
	Create(ctx context.Context, n *models.Notice) (*models.Notice, error)
	Delete(ctx context.Context, id uint) error
}
