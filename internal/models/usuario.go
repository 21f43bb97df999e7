package models

import "time"

// Usuario is a storefront customer mirrored from Shopify. Rows are never
// hard-deleted; a customers/delete webhook only clears Activo.
type Usuario struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ShopifyCustomerID string    `gorm:"size:64;not null;uniqueIndex" json:"shopify_customer_id"`
	Email             string    `gorm:"size:255;index" json:"email"`
	Nombre            string    `gorm:"size:255" json:"nombre"`
	FechaRegistro     time.Time `gorm:"autoCreateTime" json:"fecha_registro"`
	Activo            bool      `gorm:"not null;default:true" json:"activo"`
}

func (Usuario) TableName() string { return "usuarios" }
