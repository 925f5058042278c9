package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// Repository é o acesso à coleção clientes.
type Repository interface {
	List(ctx context.Context) ([]models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	Exists(ctx context.Context, id string) (bool, error)

	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.Client, error)
	Delete(ctx context.Context, id string) error
}

// ServiceRepository é o acesso à coleção clientes_servicio.
type ServiceRepository interface {
	ListByClient(ctx context.Context, clientID string) ([]models.ClientService, error)
	ListAll(ctx context.Context) ([]models.ClientService, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ClientService, error)
	IDsByClient(ctx context.Context, clientID string) ([]uuid.UUID, error)

	Create(ctx context.Context, cs *models.ClientService) (*models.ClientService, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByClient(ctx context.Context, clientID string) (int64, error)
}
