package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// joined carrega clientes_servicio -> clientes junto com cada cita.
func (r *AppointmentGormRepository) joined(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Preload("ClientService.Client")
}

// --------------------------------------------------
// Leitura
// --------------------------------------------------

func (r *AppointmentGormRepository) ListByRange(
	ctx context.Context,
	startDate string,
	endDate string,
) ([]models.Appointment, error) {

	var list []models.Appointment
	if err := r.joined(ctx).
		Where("fecha >= ? AND fecha <= ?", startDate, endDate).
		Order("fecha ASC").
		Order("hora ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AppointmentGormRepository) ListByClient(
	ctx context.Context,
	clientID string,
) ([]models.Appointment, error) {

	services := conn(ctx, r.db).
		Model(&models.ClientService{}).
		Select("id").
		Where("cliente_id = ?", clientID)

	var list []models.Appointment
	if err := r.joined(ctx).
		Where("clientes_servicio_id IN (?)", services).
		Order("fecha ASC").
		Order("hora ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AppointmentGormRepository) HasForService(
	ctx context.Context,
	serviceID uuid.UUID,
) (bool, error) {

	var ids []uuid.UUID
	if err := conn(ctx, r.db).
		Model(&models.Appointment{}).
		Where("clientes_servicio_id = ?", serviceID).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// --------------------------------------------------
// Escrita
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) (*models.Appointment, error) {

	if err := conn(ctx, r.db).Create(ap).Error; err != nil {
		return nil, err
	}
	return r.get(ctx, ap.ID)
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	fields map[string]any,
) (*models.Appointment, error) {

	res := conn(ctx, r.db).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.get(ctx, id)
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := conn(ctx, r.db).
		Where("id = ?", id).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteByServices(
	ctx context.Context,
	serviceIDs []uuid.UUID,
) (int64, error) {

	if len(serviceIDs) == 0 {
		return 0, nil
	}

	res := conn(ctx, r.db).
		Where("clientes_servicio_id IN ?", serviceIDs).
		Delete(&models.Appointment{})
	return res.RowsAffected, res.Error
}

func (r *AppointmentGormRepository) get(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.joined(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}
