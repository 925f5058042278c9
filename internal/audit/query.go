package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Filter seleciona registros de auditoria; campos vazios não filtram.
// To é inclusivo: o dia inteiro entra.
type Filter struct {
	Action   string
	Entity   string
	EntityID string
	UserID   *uint
	From     *time.Time
	To       *time.Time

	Page  int
	Limit int
}

// Normalize corrige página e tamanho fora da faixa.
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = DefaultPageSize
	}
	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Reader consulta a trilha gravada pelo Logger.
type Reader interface {
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}
