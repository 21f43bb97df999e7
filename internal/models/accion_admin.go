package models

import (
	"time"

	"gorm.io/datatypes"
)

// AccionAdmin is one append-only audit log entry.
type AccionAdmin struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AdminNombre string         `gorm:"size:255;not null;index" json:"admin_nombre"`
	TipoAccion  string         `gorm:"size:100;not null;index" json:"tipo_accion"`
	Detalles    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"detalles"`
	FechaAccion time.Time      `gorm:"not null;index" json:"fecha_accion"`
}

func (AccionAdmin) TableName() string { return "acciones_admin" }
