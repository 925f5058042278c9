package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

type RemoveResult string

const (
	RemoveOK                RemoveResult = "ok"
	RemoveNeedsConfirmation RemoveResult = "requires-confirmation"
	RemoveFailed            RemoveResult = "failed"
)

// ServiceBook é a lista de serviços de um paciente.
type ServiceBook struct {
	deps Deps

	mu       sync.Mutex
	clientID string
	items    []models.ClientService
}

func NewServiceBook(deps Deps) *ServiceBook {
	deps.Audit = deps.sink()
	return &ServiceBook{deps: deps}
}

func (b *ServiceBook) Load(ctx context.Context, clientID string) bool {
	list, err := b.deps.Services.ListByClient(ctx, clientID)
	if err != nil {
		b.deps.Log.Error("client services fetch failed", zap.String("cliente_id", clientID), zap.Error(err))
		return false
	}

	b.mu.Lock()
	b.clientID = clientID
	b.items = list
	b.mu.Unlock()
	return true
}

func (b *ServiceBook) clientKey() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clientID
}

func (b *ServiceBook) Items() []models.ClientService {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.ClientService, len(b.items))
	copy(out, b.items)
	return out
}

func (b *ServiceBook) has(service domain.ServiceType) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, cs := range b.items {
		if cs.Service == string(service) {
			return true
		}
	}
	return false
}

func (b *ServiceBook) owns(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, cs := range b.items {
		if cs.ID == id {
			return true
		}
	}
	return false
}

// Assign atribui um tipo de serviço. A duplicidade é checada na lista já
// carregada, antes de qualquer escrita.
func (b *ServiceBook) Assign(ctx context.Context, serviceType string) bool {
	b.mu.Lock()
	clientID := b.clientID
	b.mu.Unlock()

	if strings.TrimSpace(clientID) == "" {
		b.deps.Notifier.Error("missing_client", "Seleccione un paciente")
		return false
	}

	st, err := domain.ParseServiceType(serviceType)
	if err != nil {
		b.deps.Notifier.Error(httperr.CodeOf(err), "Seleccione un servicio válido")
		return false
	}

	if b.has(st) {
		b.deps.Notifier.Error("duplicate_service", fmt.Sprintf("El paciente ya tiene asignado %s", st.Label()))
		return false
	}

	row, err := b.deps.Services.Create(ctx, &models.ClientService{
		ClientID: clientID,
		Service:  string(st),
	})
	if err != nil {
		b.deps.Log.Error("service assign failed",
			zap.String("cliente_id", clientID),
			zap.String("servicio", string(st)),
			zap.Error(err),
		)
		b.deps.Notifier.Error("service_not_saved", "No se pudo asignar el servicio")
		return false
	}

	b.mu.Lock()
	b.items = append([]models.ClientService{*row}, b.items...)
	b.mu.Unlock()

	b.deps.Notifier.Success(fmt.Sprintf("Servicio %s asignado", st.Label()))
	b.deps.Audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "service_assigned",
		Entity:   "clientes_servicio",
		EntityID: row.ID.String(),
		Metadata: map[string]string{"cliente_id": clientID, "servicio": string(st)},
	})
	return true
}

// Remove exclui um serviço. Se houver citas dependentes e confirmed for false
// nada é apagado e o chamador precisa repetir com confirmed=true; aí as citas
// saem primeiro e depois o serviço. Só serviços da lista carregada podem sair.
func (b *ServiceBook) Remove(ctx context.Context, serviceID string, confirmed bool) RemoveResult {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		b.deps.Notifier.Error("invalid_service", "Servicio inválido")
		return RemoveFailed
	}
	if !b.owns(id) {
		b.deps.Log.Warn("service not in client list",
			zap.String("cliente_id", b.clientKey()),
			zap.String("id", serviceID),
		)
		b.deps.Notifier.Error("invalid_service", "El servicio no pertenece al paciente")
		return RemoveFailed
	}

	dependent, err := b.deps.Appointments.HasForService(ctx, id)
	if err != nil {
		b.deps.Log.Error("dependent appointments check failed", zap.String("id", serviceID), zap.Error(err))
		b.deps.Notifier.Error("service_not_removed", "No se pudo eliminar el servicio")
		return RemoveFailed
	}

	if dependent && !confirmed {
		return RemoveNeedsConfirmation
	}

	var removedAppointments int64
	if dependent {
		removedAppointments, err = b.deps.Appointments.DeleteByServices(ctx, []uuid.UUID{id})
		if err != nil {
			b.deps.Log.Error("dependent appointments delete failed", zap.String("id", serviceID), zap.Error(err))
			b.deps.Notifier.Error("service_not_removed", "No se pudieron eliminar las citas del servicio")
			return RemoveFailed
		}
	}

	if err := b.deps.Services.Delete(ctx, id); err != nil {
		b.deps.Log.Error("service delete failed", zap.String("id", serviceID), zap.Error(err))
		b.deps.Notifier.Error("service_not_removed", "No se pudo eliminar el servicio")
		return RemoveFailed
	}

	b.mu.Lock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	b.deps.Notifier.Success("Servicio eliminado")
	b.deps.Audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "service_removed",
		Entity:   "clientes_servicio",
		EntityID: serviceID,
		Metadata: map[string]int64{"citas_eliminadas": removedAppointments},
	})
	return RemoveOK
}
