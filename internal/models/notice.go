package models

import "time"

type Notice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title    string `gorm:"column:titulo;size:150;not null" json:"titulo"`
	Body     string `gorm:"column:contenido;type:text" json:"contenido"`
	Priority string `gorm:"column:prioridad;size:10;not null" json:"prioridad"`

	ExpiresAt time.Time `gorm:"column:fecha_expiracion;index" json:"fecha_expiracion"`
	CreatedAt time.Time `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
}

func (Notice) TableName() string { return "avisos" }
