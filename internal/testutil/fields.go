package testutil

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// applyAppointmentFields aplica as colunas de appointment.Changes.Fields.
func applyAppointmentFields(row *models.Appointment, fields map[string]any) error {
	for k, v := range fields {
		switch k {
		case "fecha":
			d, ok := v.(datatypes.Date)
			if !ok {
				return fmt.Errorf("fecha: unexpected %T", v)
			}
			row.Date = d
		case "hora":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("hora: unexpected %T", v)
			}
			row.Time = s
		case "estado":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("estado: unexpected %T", v)
			}
			row.Status = s
		case "clientes_servicio_id":
			id, ok := v.(uuid.UUID)
			if !ok {
				return fmt.Errorf("clientes_servicio_id: unexpected %T", v)
			}
			row.ClientServiceID = id
		default:
			return fmt.Errorf("unknown column %q", k)
		}
	}
	return nil
}
