package builds

import (
	"time"

	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/models"
	"gorm.io/datatypes"
)

// Build is a saved skateboard configuration. The fixed slots hold Shopify
// product ids; OtrosComponentes keeps any extra slot the storefront sends.
type Build struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	UsuarioID        uint              `gorm:"not null;index" json:"usuario_id"`
	NombreBuild      string            `gorm:"size:255;not null" json:"nombre_build"`
	TablaID          string            `gorm:"size:64;not null" json:"tabla_id"`
	RuedasID         *string           `gorm:"size:64" json:"ruedas_id"`
	EjesID           *string           `gorm:"size:64" json:"ejes_id"`
	GripID           *string           `gorm:"size:64" json:"grip_id"`
	OtrosComponentes datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"otros_componentes"`
	FechaCreacion    time.Time         `gorm:"autoCreateTime;index" json:"fecha_creacion"`
	Usuario          *models.Usuario   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Build) TableName() string { return "build_skates" }

type CrearBuildRequest struct {
	ShopifyCustomerID dto.ExternalID         `json:"shopify_customer_id" validate:"required"`
	NombreBuild       string                 `json:"nombre_build" validate:"required,max=255"`
	TablaID           string                 `json:"tabla_id" validate:"required"`
	RuedasID          *string                `json:"ruedas_id"`
	EjesID            *string                `json:"ejes_id"`
	GripID            *string                `json:"grip_id"`
	OtrosComponentes  map[string]interface{} `json:"otros_componentes"`
}
