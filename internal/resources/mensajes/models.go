package mensajes

import (
	"time"

	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/models"
)

const (
	EstadoPendiente  = "pendiente"
	EstadoRespondido = "respondido"
	EstadoCerrado    = "cerrado"
)

type Mensaje struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UsuarioID      uint            `gorm:"not null;index" json:"usuario_id"`
	Asunto         string          `gorm:"size:255;not null" json:"asunto"`
	Contenido      string          `gorm:"column:mensaje;type:text;not null" json:"mensaje"`
	Estado         string          `gorm:"size:20;not null;default:pendiente;index" json:"estado"`
	RespuestaAdmin *string         `gorm:"type:text" json:"respuesta_admin"`
	FechaEnvio     time.Time       `gorm:"autoCreateTime;index" json:"fecha_envio"`
	Usuario        *models.Usuario `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Mensaje) TableName() string { return "mensajes" }

// MensajeConUsuario is a message joined with its sender.
type MensajeConUsuario struct {
	Mensaje
	ShopifyCustomerID string `json:"shopify_customer_id"`
	Email             string `json:"email"`
	Nombre            string `json:"nombre"`
}

type CrearMensajeRequest struct {
	ShopifyCustomerID dto.ExternalID `json:"shopify_customer_id" validate:"required"`
	Asunto            string         `json:"asunto" validate:"required,max=255"`
	Mensaje           string         `json:"mensaje" validate:"required"`
}

type ActualizarMensajeRequest struct {
	Estado         string  `json:"estado" validate:"required,oneof=pendiente respondido cerrado"`
	RespuestaAdmin *string `json:"respuesta_admin"`
}
