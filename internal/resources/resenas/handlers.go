package resenas

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/validation"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ListByProducto(c *fiber.Ctx) error {
	out, err := h.svc.ListByProducto(c.UserContext(), c.Params("producto_id"))
	if err != nil {
		return respond.Internal(c, "Error al obtener reseñas", err)
	}
	return respond.OK(c, "Reseñas obtenidas correctamente", out)
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), resources.QueryLimit(c, 100, 500))
	if err != nil {
		return respond.Internal(c, "Error al obtener reseñas", err)
	}
	return respond.OK(c, "Reseñas obtenidas correctamente", out)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	r, err := h.svc.Create(c.UserContext(), validation.Get[CrearResenaRequest](c))
	if err != nil {
		return respond.Internal(c, "Error al crear reseña", err)
	}
	return respond.Created(c, "Reseña creada correctamente", r)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, ok := resources.ParamID(c, "id")
	if !ok {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de reseña inválido")
	}
	r, err := h.svc.Update(c.UserContext(), id, validation.Get[ActualizarResenaRequest](c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Reseña no encontrada")
		}
		return respond.Internal(c, "Error al actualizar reseña", err)
	}
	return respond.OK(c, "Reseña actualizada correctamente", r)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := resources.ParamID(c, "id")
	if !ok {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de reseña inválido")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Reseña no encontrada")
		}
		return respond.Internal(c, "Error al eliminar reseña", err)
	}
	return respond.OK(c, "Reseña eliminada correctamente", nil)
}
