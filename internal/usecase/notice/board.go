package notice

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/notice"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
)

// Board é o quadro de avisos do painel.
type Board struct {
	repo     domain.Repository
	log      *zap.Logger
	notifier notify.Notifier
	now      func() time.Time

	mu    sync.Mutex
	items []models.Notice
}

func NewBoard(
	repo domain.Repository,
	log *zap.Logger,
	notifier notify.Notifier,
	now func() time.Time,
) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{
		repo:     repo,
		log:      log,
		notifier: notifier,
		now:      now,
	}
}

// Load apaga os vencidos antes de listar e ordenar. Falha na limpeza não
// impede a listagem.
func (b *Board) Load(ctx context.Context) bool {
	if n, err := b.repo.PurgeExpired(ctx, b.now()); err != nil {
		b.log.Warn("expired notices purge failed", zap.Error(err))
	} else if n > 0 {
		b.log.Info("expired notices purged", zap.Int64("count", n))
	}

	list, err := b.repo.List(ctx)
	if err != nil {
		b.log.Error("notices fetch failed", zap.Error(err))
		return false
	}
	domain.Sort(list)

	b.mu.Lock()
	b.items = list
	b.mu.Unlock()
	return true
}

func (b *Board) Items() []models.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Notice, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Board) Create(ctx context.Context, d domain.Draft) bool {
	if err := d.Validate(b.now()); err != nil {
		b.notifier.Error(httperr.CodeOf(err), "Complete título, contenido, prioridad y una fecha de expiración futura")
		return false
	}

	if _, err := b.repo.Create(ctx, d.Model()); err != nil {
		b.log.Error("notice insert failed", zap.Error(err))
		b.notifier.Error("notice_not_saved", "No se pudo publicar el aviso")
		return false
	}

	b.notifier.Success("Aviso publicado")
	b.Load(ctx)
	return true
}

func (b *Board) Delete(ctx context.Context, id uint) bool {
	if err := b.repo.Delete(ctx, id); err != nil {
		b.log.Error("notice delete failed", zap.Uint("id", id), zap.Error(err))
		b.notifier.Error("notice_not_deleted", "No se pudo eliminar el aviso")
		return false
	}

	b.notifier.Success("Aviso eliminado")
	b.Load(ctx)
	return true
}
