package favoritos

import (
	"time"

	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/models"
)

type Favorito struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UsuarioID      uint            `gorm:"not null;uniqueIndex:idx_favoritos_usuario_producto" json:"usuario_id"`
	IDProducto     string          `gorm:"column:id_producto;size:64;not null;uniqueIndex:idx_favoritos_usuario_producto" json:"id_producto"`
	NombreProducto string          `gorm:"size:255;not null" json:"nombre_producto"`
	FechaAgregado  time.Time       `gorm:"autoCreateTime;index" json:"fecha_agregado"`
	Usuario        *models.Usuario `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorito) TableName() string { return "favoritos" }

type CrearFavoritoRequest struct {
	ShopifyCustomerID dto.ExternalID `json:"shopify_customer_id" validate:"required"`
	IDProducto        string         `json:"id_producto" validate:"required"`
	NombreProducto    string         `json:"nombre_producto" validate:"required"`
}
