package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*ClientGormRepository)(nil)

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) List(ctx context.Context) ([]models.Client, error) {
	var list []models.Client
	if err := conn(ctx, r.db).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ClientGormRepository) Get(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	if err := conn(ctx, r.db).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Exists é a sondagem limit-1 feita antes do cadastro.
func (r *ClientGormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var ids []string
	if err := conn(ctx, r.db).
		Model(&models.Client{}).
		Where("id = ?", id).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *ClientGormRepository) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	if err := conn(ctx, r.db).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClientGormRepository) Update(
	ctx context.Context,
	id string,
	fields map[string]any,
) (*models.Client, error) {

	res := conn(ctx, r.db).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *ClientGormRepository) Delete(ctx context.Context, id string) error {
	res := conn(ctx, r.db).
		Where("id = ?", id).
		Delete(&models.Client{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
