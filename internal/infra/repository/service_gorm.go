package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

var _ domain.ServiceRepository = (*ServiceGormRepository)(nil)

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) ListByClient(
	ctx context.Context,
	clientID string,
) ([]models.ClientService, error) {

	var list []models.ClientService
	if err := conn(ctx, r.db).
		Where("cliente_id = ?", clientID).
		Order("fecha_asignacion DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ServiceGormRepository) ListAll(ctx context.Context) ([]models.ClientService, error) {
	var list []models.ClientService
	if err := conn(ctx, r.db).
		Preload("Client").
		Order("fecha_asignacion DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ServiceGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.ClientService, error) {
	var cs models.ClientService
	if err := conn(ctx, r.db).
		Where("id = ?", id).
		First(&cs).Error; err != nil {
		return nil, notFound(err)
	}
	return &cs, nil
}

func (r *ServiceGormRepository) IDsByClient(ctx context.Context, clientID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := conn(ctx, r.db).
		Model(&models.ClientService{}).
		Where("cliente_id = ?", clientID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ServiceGormRepository) Create(
	ctx context.Context,
	cs *models.ClientService,
) (*models.ClientService, error) {

	if err := conn(ctx, r.db).Create(cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *ServiceGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := conn(ctx, r.db).
		Where("id = ?", id).
		Delete(&models.ClientService{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ServiceGormRepository) DeleteByClient(ctx context.Context, clientID string) (int64, error) {
	res := conn(ctx, r.db).
		Where("cliente_id = ?", clientID).
		Delete(&models.ClientService{})
	return res.RowsAffected, res.Error
}
