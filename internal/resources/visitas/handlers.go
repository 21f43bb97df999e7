package visitas

import (
	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/validation"
)

type Handler struct {
	svc      *Service
	usuarios resources.UsuarioResolver
}

func NewHandler(svc *Service, usuarios resources.UsuarioResolver) *Handler {
	return &Handler{svc: svc, usuarios: usuarios}
}

// Record stores a visit. Anonymous visits are acknowledged but not kept.
func (h *Handler) Record(c *fiber.Ctx) error {
	req := validation.Get[RegistrarVisitaRequest](c)
	if req.ShopifyCustomerID == "" {
		return respond.OK(c, "Visita anónima no registrada", nil)
	}

	usuarioID, err := h.usuarios.ResolveID(c.UserContext(), req.ShopifyCustomerID.String())
	if err != nil {
		return resources.UsuarioError(c, err, "Error al registrar visita")
	}

	v, err := h.svc.Record(c.UserContext(), usuarioID, req.IDProducto)
	if err != nil {
		return respond.Internal(c, "Error al registrar visita", err)
	}
	return respond.Created(c, "Visita registrada correctamente", v)
}

func (h *Handler) ListByProducto(c *fiber.Ctx) error {
	out, err := h.svc.ListByProducto(c.UserContext(), c.Params("producto_id"), resources.QueryLimit(c, 100, 1000))
	if err != nil {
		return respond.Internal(c, "Error al obtener visitas", err)
	}
	return respond.OK(c, "Visitas obtenidas correctamente", out)
}
