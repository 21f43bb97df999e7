package visitas

import (
	"time"

	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/models"
)

// Visita records a product page view by a known customer. Rows are never
// updated or deleted.
type Visita struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UsuarioID   uint            `gorm:"not null;index" json:"usuario_id"`
	IDProducto  string          `gorm:"column:id_producto;size:64;not null;index" json:"id_producto"`
	FechaVisita time.Time       `gorm:"autoCreateTime;index" json:"fecha_visita"`
	Usuario     *models.Usuario `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Visita) TableName() string { return "visitas" }

type VisitaConUsuario struct {
	Visita
	ShopifyCustomerID string `json:"shopify_customer_id"`
	Email             string `json:"email"`
	Nombre            string `json:"nombre"`
}

type RegistrarVisitaRequest struct {
	IDProducto        string         `json:"id_producto" validate:"required"`
	ShopifyCustomerID dto.ExternalID `json:"shopify_customer_id"`
}
