package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// ServiceLookup resolve um servicio contratado pelo id.
type ServiceLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*models.ClientService, error)
}

// CheckService exige que serviceID seja um servicio contratado de clientID.
// Servicio inexistente, de outro paciente ou consulta falha viram invalid_service.
func CheckService(
	ctx context.Context,
	services ServiceLookup,
	log *zap.Logger,
	clientID, serviceID string,
) error {
	sid, err := domain.ParseID(serviceID)
	if err != nil {
		return httperr.ErrBusiness("invalid_service")
	}

	cs, err := services.Get(ctx, sid)
	if err != nil {
		log.Warn("client service lookup failed",
			zap.String("cliente_id", clientID),
			zap.String("clientes_servicio_id", serviceID),
			zap.Error(err),
		)
		return httperr.ErrBusiness("invalid_service")
	}

	if cs.ClientID != strings.TrimSpace(clientID) {
		log.Warn("client service belongs to another client",
			zap.String("cliente_id", clientID),
			zap.String("clientes_servicio_id", serviceID),
		)
		return httperr.ErrBusiness("invalid_service")
	}
	return nil
}
