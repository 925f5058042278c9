package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// Repository é o acesso à coleção citas. Listagens sempre trazem o join
// clientes_servicio -> clientes preenchido.
type Repository interface {
	// -------- Leitura --------
	ListByRange(
		ctx context.Context,
		startDate string,
		endDate string,
	) ([]models.Appointment, error)

	ListByClient(
		ctx context.Context,
		clientID string,
	) ([]models.Appointment, error)

	HasForService(
		ctx context.Context,
		serviceID uuid.UUID,
	) (bool, error)

	// -------- Escrita --------
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		id uuid.UUID,
		fields map[string]any,
	) (*models.Appointment, error)

	Delete(
		ctx context.Context,
		id uuid.UUID,
	) error

	DeleteByServices(
		ctx context.Context,
		serviceIDs []uuid.UUID,
	) (int64, error)
}
