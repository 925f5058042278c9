package appointment

import (
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// NewScheduled monta uma cita programada já com a hora normalizada.
func NewScheduled(serviceID string, date string, clock string) (*models.Appointment, error) {
	sid, err := ParseID(serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	d, err := ParseStoreDate(date)
	if err != nil {
		return nil, err
	}

	norm, err := NormalizeTime(clock)
	if err != nil {
		return nil, err
	}

	return &models.Appointment{
		ClientServiceID: sid,
		Date:            d,
		Time:            norm,
		Status:          string(InitialStatus()),
	}, nil
}

// ParseStoreDate converte YYYY-MM-DD para a coluna DATE.
func ParseStoreDate(s string) (datatypes.Date, error) {
	t, err := calendar.ParseDate(s, time.UTC)
	if err != nil {
		return datatypes.Date{}, httperr.ErrBusiness("invalid_date")
	}
	return datatypes.Date(t), nil
}

// ParseSlotDate é ParseStoreDate recusando sábados e domingos.
func ParseSlotDate(s string) (datatypes.Date, error) {
	d, err := ParseStoreDate(s)
	if err != nil {
		return datatypes.Date{}, err
	}
	if calendar.IsWeekend(time.Time(d)) {
		return datatypes.Date{}, httperr.ErrBusiness("weekend_not_allowed")
	}
	return d, nil
}

// FormatStoreDate lê a coluna DATE pelos campos de calendário.
func FormatStoreDate(d datatypes.Date) string {
	return calendar.FormatDate(time.Time(d))
}

// Changes é a atualização parcial de uma cita (edição ou asistencia).
type Changes struct {
	Date            *string
	Time            *string
	Status          *Status
	ClientServiceID *string
}

// Fields valida e converte Changes nas colunas a atualizar.
func (c Changes) Fields() (map[string]any, error) {
	fields := map[string]any{}

	if c.Date != nil {
		d, err := ParseSlotDate(*c.Date)
		if err != nil {
			return nil, err
		}
		fields["fecha"] = d
	}
	if c.Time != nil {
		norm, err := SlotTime(*c.Time)
		if err != nil {
			return nil, err
		}
		fields["hora"] = norm
	}
	if c.Status != nil {
		if !c.Status.Valid() {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		fields["estado"] = string(*c.Status)
	}
	if c.ClientServiceID != nil {
		sid, err := ParseID(*c.ClientServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_service")
		}
		fields["clientes_servicio_id"] = sid
	}

	if len(fields) == 0 {
		return nil, httperr.ErrBusiness("nothing_to_update")
	}
	return fields, nil
}
