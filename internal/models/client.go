package models

import "time"

// Paciente. O ID é o número de documento informado na recepção.
type Client struct {
	ID     string `gorm:"primaryKey;size:20" json:"id"`
	Name   string `gorm:"column:nombre;size:150;not null" json:"nombre"`
	Phone  string `gorm:"column:telefono;size:20" json:"telefono"`
	Reason string `gorm:"column:motivo;size:20;not null" json:"motivo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clientes" }
