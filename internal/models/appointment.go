package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientServiceID uuid.UUID      `gorm:"column:clientes_servicio_id;type:uuid;not null;index" json:"clientes_servicio_id"`
	ClientService   *ClientService `gorm:"foreignKey:ClientServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"clientes_servicio,omitempty"`

	Date   datatypes.Date `gorm:"column:fecha;not null;index" json:"fecha"`
	Time   string         `gorm:"column:hora;type:time;not null" json:"hora"`
	Status string         `gorm:"column:estado;size:20;default:'programada'" json:"estado"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string { return "citas" }

func (ap *Appointment) BeforeCreate(tx *gorm.DB) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	return nil
}
