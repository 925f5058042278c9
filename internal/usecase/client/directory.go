package client

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
)

// Transactor executa fn numa transação do store.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Deps struct {
	Clients      domain.Repository
	Services     domain.ServiceRepository
	Appointments appointment.Repository
	Tx           Transactor // opcional
	Log          *zap.Logger
	Notifier     notify.Notifier
	Audit        audit.Sink
}

func (d Deps) sink() audit.Sink {
	if d.Audit == nil {
		return audit.Nop{}
	}
	return d.Audit
}

// Directory é a lista de pacientes em memória com as operações de cadastro.
type Directory struct {
	deps Deps

	mu    sync.Mutex
	items []models.Client
}

func NewDirectory(deps Deps) *Directory {
	deps.Audit = deps.sink()
	return &Directory{deps: deps}
}

// ======================================================
// LEITURA
// ======================================================

func (d *Directory) Load(ctx context.Context) bool {
	list, err := d.deps.Clients.List(ctx)
	if err != nil {
		d.deps.Log.Error("clients fetch failed", zap.Error(err))
		return false
	}

	d.mu.Lock()
	d.items = list
	d.mu.Unlock()
	return true
}

func (d *Directory) Items() []models.Client {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Client, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Directory) Search(term string) []models.Client {
	var out []models.Client
	for _, c := range d.Items() {
		if domain.Matches(c, term) {
			out = append(out, c)
		}
	}
	return out
}

// WithServices filtra os pacientes que têm ao menos um serviço atribuído.
func (d *Directory) WithServices(all []models.ClientService) []models.Client {
	has := make(map[string]bool, len(all))
	for _, cs := range all {
		has[cs.ClientID] = true
	}

	var out []models.Client
	for _, c := range d.Items() {
		if has[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func (d *Directory) Get(ctx context.Context, id string) (*models.Client, bool) {
	c, err := d.deps.Clients.Get(ctx, id)
	if err != nil {
		d.deps.Log.Warn("client lookup failed", zap.String("id", id), zap.Error(err))
		return nil, false
	}
	return c, true
}

// ======================================================
// CADASTRO
// ======================================================

// Add valida, sonda a existência do documento e grava. A sonda não é
// transacional; a chave primária do store é a garantia final.
func (d *Directory) Add(ctx context.Context, c domain.Candidate) bool {
	if err := c.Validate(); err != nil {
		d.deps.Notifier.Error(httperr.CodeOf(err), "Datos del paciente inválidos")
		return false
	}

	exists, err := d.deps.Clients.Exists(ctx, c.ID)
	if err != nil {
		d.deps.Log.Error("client existence check failed", zap.String("id", c.ID), zap.Error(err))
		d.deps.Notifier.Error("client_not_saved", "No se pudo registrar el paciente")
		return false
	}
	if exists {
		d.deps.Notifier.Error("duplicate_id", fmt.Sprintf("Ya existe un paciente con documento %s", c.ID))
		return false
	}

	row, err := d.deps.Clients.Create(ctx, c.Model())
	if err != nil {
		d.deps.Log.Error("client insert failed", zap.String("id", c.ID), zap.Error(err))
		if httperr.IsUniqueViolation(err) {
			d.deps.Notifier.Error("duplicate_id", fmt.Sprintf("Ya existe un paciente con documento %s", c.ID))
		} else {
			d.deps.Notifier.Error("client_not_saved", "No se pudo registrar el paciente")
		}
		return false
	}

	d.mu.Lock()
	d.items = append([]models.Client{*row}, d.items...)
	d.mu.Unlock()

	d.deps.Notifier.Success(fmt.Sprintf("Paciente %s registrado", row.Name))
	d.deps.Audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "client_created",
		Entity:   "cliente",
		EntityID: row.ID,
		Metadata: map[string]string{"motivo": row.Reason},
	})
	return true
}

// Update edita nombre/telefono/motivo. O documento é imutável.
func (d *Directory) Update(ctx context.Context, id string, p domain.Patch) bool {
	fields, err := p.Fields()
	if err != nil {
		d.deps.Notifier.Error(httperr.CodeOf(err), "Datos del paciente inválidos")
		return false
	}

	row, err := d.deps.Clients.Update(ctx, id, fields)
	if err != nil {
		d.deps.Log.Error("client update failed", zap.String("id", id), zap.Error(err))
		d.deps.Notifier.Error("client_not_saved", "No se pudo actualizar el paciente")
		return false
	}

	d.mu.Lock()
	for i := range d.items {
		if d.items[i].ID == id {
			d.items[i] = *row
			break
		}
	}
	d.mu.Unlock()

	d.deps.Notifier.Success(fmt.Sprintf("Paciente %s actualizado", row.Name))
	return true
}
