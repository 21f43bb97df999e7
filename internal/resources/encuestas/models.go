package encuestas

import (
	"time"

	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/models"
)

// Encuesta is a post-purchase satisfaction survey; one per usuario and order.
type Encuesta struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UsuarioID     uint            `gorm:"not null;index:idx_encuestas_usuario_pedido" json:"usuario_id"`
	IDPedido      string          `gorm:"column:id_pedido;size:64;not null;index:idx_encuestas_usuario_pedido" json:"id_pedido"`
	Satisfaccion  int             `gorm:"not null;check:satisfaccion BETWEEN 1 AND 5" json:"satisfaccion"`
	Comentario    *string         `gorm:"type:text" json:"comentario"`
	FechaCreacion time.Time       `gorm:"autoCreateTime;index" json:"fecha_creacion"`
	Usuario       *models.Usuario `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Encuesta) TableName() string { return "encuestas" }

type EncuestaConUsuario struct {
	Encuesta
	ShopifyCustomerID string `json:"shopify_customer_id"`
	Email             string `json:"email"`
	Nombre            string `json:"nombre"`
}

type CrearEncuestaRequest struct {
	ShopifyCustomerID dto.ExternalID `json:"shopify_customer_id" validate:"required"`
	IDPedido          dto.ExternalID `json:"id_pedido" validate:"required"`
	Satisfaccion      dto.Rating     `json:"satisfaccion" validate:"required,rating"`
	Comentario        *string        `json:"comentario"`
}
