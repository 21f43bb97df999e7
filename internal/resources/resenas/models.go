package resenas

import (
	"time"

	"github.com/granitoskate/backoffice/internal/dto"
)

// Resena is a storefront product review. Reviews are anonymous and do not
// reference usuarios.
type Resena struct {
	ID            int       `db:"id" json:"id"`
	NombreCliente string    `db:"nombre_cliente" json:"nombre_cliente"`
	IDProducto    string    `db:"id_producto" json:"id_producto"`
	Valoracion    int       `db:"valoracion" json:"valoracion"`
	Comentario    *string   `db:"comentario" json:"comentario"`
	FechaCreacion time.Time `db:"fecha_creacion" json:"fecha_creacion"`
}

type CrearResenaRequest struct {
	NombreCliente string  `json:"nombre_cliente" validate:"required,max=255"`
	IDProducto    string     `json:"id_producto" validate:"required"`
	Valoracion    dto.Rating `json:"valoracion" validate:"required,rating"`
	Comentario    *string    `json:"comentario"`
}

type ActualizarResenaRequest struct {
	Valoracion dto.Rating `json:"valoracion" validate:"required,rating"`
	Comentario *string    `json:"comentario"`
}
