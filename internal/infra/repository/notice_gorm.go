package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/notice"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

type NoticeGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*NoticeGormRepository)(nil)

func NewNoticeGormRepository(db *gorm.DB) *NoticeGormRepository {
	return &NoticeGormRepository{db: db}
}

func (r *NoticeGormRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := conn(ctx, r.db).
		Where("fecha_expiracion < ?", now).
		Delete(&models.Notice{})
	return res.RowsAffected, res.Error
}

func (r *NoticeGormRepository) List(ctx context.Context) ([]models.Notice, error) {
	var list []models.Notice
	if err := conn(ctx, r.db).
		Order("fecha_creacion DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *NoticeGormRepository) Create(ctx context.Context, n *models.Notice) (*models.Notice, error) {
	if err := conn(ctx, r.db).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NoticeGormRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Notice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
