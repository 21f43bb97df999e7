package models

import "time"

type Admin struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Email         string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password      string     `gorm:"size:255;not null" json:"-"`
	Nombre        string     `gorm:"size:255;not null" json:"nombre"`
	Role          string     `gorm:"size:50;not null;default:admin" json:"role"`
	UltimoLogin   *time.Time `json:"ultimo_login"`
	FechaCreacion time.Time  `gorm:"autoCreateTime" json:"fecha_creacion"`
}

func (Admin) TableName() string { return "admins" }
