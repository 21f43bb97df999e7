package encuestas

import (
	"errors"

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

func (h *Handler) Create(c *fiber.Ctx) error {
	req := validation.Get[CrearEncuestaRequest](c)

	usuarioID, err := h.usuarios.ResolveID(c.UserContext(), req.ShopifyCustomerID.String())
	if err != nil {
		return resources.UsuarioError(c, err, "Error al guardar encuesta")
	}

	e, err := h.svc.Create(c.UserContext(), usuarioID, req)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return respond.Fail(c, fiber.StatusConflict, "Ya existe una encuesta para este pedido")
		}
		return respond.Internal(c, "Error al guardar encuesta", err)
	}
	return respond.Created(c, "Encuesta guardada correctamente", e)
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext())
	if err != nil {
		return respond.Internal(c, "Error al obtener encuestas", err)
	}
	return respond.OK(c, "Encuestas obtenidas correctamente", out)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := resources.ParamID(c, "id")
	if !ok {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de encuesta inválido")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Encuesta no encontrada")
		}
		return respond.Internal(c, "Error al eliminar encuesta", err)
	}
	return respond.OK(c, "Encuesta eliminada correctamente", nil)
}
