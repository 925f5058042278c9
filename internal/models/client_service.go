package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientService struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string  `gorm:"column:cliente_id;size:20;not null;index" json:"cliente_id"`
	Client   *Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"cliente,omitempty"`

	Service    string    `gorm:"column:servicio;size:40;not null" json:"servicio"`
	AssignedAt time.Time `gorm:"column:fecha_asignacion;autoCreateTime" json:"fecha_asignacion"`
}

func (ClientService) TableName() string { return "clientes_servicio" }

func (cs *ClientService) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return nil
}
