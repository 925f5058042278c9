package appointment

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// Window é o intervalo de datas (inclusivo) carregado no espelho.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Mirror mantém em memória as citas de uma janela de datas. Nenhuma operação
// propaga erro do store: falhas são logadas e devolvidas como false / vazio.
type Mirror struct {
	repo  domain.Repository
	log   *zap.Logger
	audit audit.Sink

	mu     sync.Mutex
	items  []domain.View
	window *Window
}

func NewMirror(
	repo domain.Repository,
	log *zap.Logger,
	sink audit.Sink,
) *Mirror {
	if sink == nil {
		sink = audit.Nop{}
	}
	return &Mirror{
		repo:  repo,
		log:   log,
		audit: sink,
	}
}

// ======================================================
// LEITURA
// ======================================================

// Fetch carrega [start, end]. Em falha (store ou linha malformada) devolve
// vazio e mantém o espelho anterior intacto.
func (m *Mirror) Fetch(ctx context.Context, start, end string) []domain.View {
	rows, err := m.repo.ListByRange(ctx, start, end)
	if err != nil {
		m.log.Error("appointments fetch failed",
			zap.String("start", start),
			zap.String("end", end),
			zap.Error(err),
		)
		return nil
	}

	views, err := domain.FromModels(rows)
	if err != nil {
		m.log.Error("appointments fetch returned malformed rows",
			zap.String("start", start),
			zap.String("end", end),
			zap.Error(err),
		)
		return nil
	}

	m.mu.Lock()
	m.items = views
	m.window = &Window{Start: start, End: end}
	m.mu.Unlock()

	return copyViews(views)
}

// Refetch repete a última janela carregada.
func (m *Mirror) Refetch(ctx context.Context) bool {
	w, ok := m.Window()
	if !ok {
		return false
	}

	rows, err := m.repo.ListByRange(ctx, w.Start, w.End)
	if err != nil {
		m.log.Error("appointments refetch failed", zap.String("start", w.Start), zap.Error(err))
		return false
	}
	views, err := domain.FromModels(rows)
	if err != nil {
		m.log.Error("appointments refetch returned malformed rows", zap.Error(err))
		return false
	}

	m.mu.Lock()
	m.items = views
	m.mu.Unlock()
	return true
}

func (m *Mirror) Window() (Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.window == nil {
		return Window{}, false
	}
	return *m.window, true
}

func (m *Mirror) Items() []domain.View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyViews(m.items)
}

func (m *Mirror) Find(id string) (domain.View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.items {
		if v.ID == id {
			return v, true
		}
	}
	return domain.View{}, false
}

func (m *Mirror) Clear() {
	m.mu.Lock()
	m.items = nil
	m.window = nil
	m.mu.Unlock()
}

// ======================================================
// ESCRITA
// ======================================================

// Add insere e acrescenta ao espelho a linha devolvida pelo store.
func (m *Mirror) Add(ctx context.Context, ap *models.Appointment) (domain.View, bool) {
	row, err := m.repo.Create(ctx, ap)
	if err != nil || row == nil {
		m.log.Error("appointment insert failed",
			zap.String("clientes_servicio_id", ap.ClientServiceID.String()),
			zap.String("fecha", domain.FormatStoreDate(ap.Date)),
			zap.String("hora", ap.Time),
			zap.Error(err),
		)
		return domain.View{}, false
	}

	v, err := domain.FromModel(*row)
	if err != nil {
		m.log.Error("appointment insert returned malformed row", zap.Error(err))
		return domain.View{}, false
	}

	m.mu.Lock()
	m.items = append(m.items, v)
	m.mu.Unlock()

	m.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "appointment_created",
		Entity:   "cita",
		EntityID: v.ID,
		Metadata: map[string]string{"fecha": v.Date, "hora": v.Time},
	})
	return v, true
}

// Update aplica a alteração parcial e troca a entrada do espelho.
func (m *Mirror) Update(ctx context.Context, id string, changes domain.Changes) (domain.View, bool) {
	uid, err := domain.ParseID(id)
	if err != nil {
		m.log.Error("appointment update with invalid id", zap.String("id", id))
		return domain.View{}, false
	}

	fields, err := changes.Fields()
	if err != nil {
		m.log.Error("appointment update rejected", zap.String("id", id), zap.Error(err))
		return domain.View{}, false
	}

	row, err := m.repo.Update(ctx, uid, fields)
	if err != nil || row == nil {
		m.log.Error("appointment update failed", zap.String("id", id), zap.Error(err))
		return domain.View{}, false
	}

	v, err := domain.FromModel(*row)
	if err != nil {
		m.log.Error("appointment update returned malformed row", zap.Error(err))
		return domain.View{}, false
	}

	m.mu.Lock()
	for i := range m.items {
		if m.items[i].ID == v.ID {
			m.items[i] = v
			break
		}
	}
	m.mu.Unlock()

	m.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "appointment_updated",
		Entity:   "cita",
		EntityID: v.ID,
		Metadata: fields,
	})
	return v, true
}

func (m *Mirror) Delete(ctx context.Context, id string) bool {
	uid, err := domain.ParseID(id)
	if err != nil {
		m.log.Error("appointment delete with invalid id", zap.String("id", id))
		return false
	}

	if err := m.repo.Delete(ctx, uid); err != nil {
		m.log.Error("appointment delete failed", zap.String("id", id), zap.Error(err))
		return false
	}

	m.mu.Lock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "appointment_deleted",
		Entity:   "cita",
		EntityID: id,
	})
	return true
}

func copyViews(in []domain.View) []domain.View {
	out := make([]domain.View, len(in))
	copy(out, in)
	return out
}
