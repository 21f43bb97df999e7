package eventos

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/validation"
)

type Handler struct {
	svc   *Service
	audit audit.Recorder
}

func NewHandler(svc *Service, recorder audit.Recorder) *Handler {
	return &Handler{svc: svc, audit: recorder}
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.svc.Upcoming(c.UserContext())
	if err != nil {
		return respond.Internal(c, "Error al obtener eventos", err)
	}
	return respond.OK(c, "Eventos obtenidos correctamente", out)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	req := validation.Get[CrearEventoRequest](c)

	e, err := h.svc.Create(c.UserContext(), req)
	if err != nil {
		return respond.Internal(c, "Error al crear evento", err)
	}

	h.audit.Record(audit.Actor(c), "creacion_evento", map[string]interface{}{
		"evento_id": e.ID, "titulo": e.Titulo,
	})
	return respond.Created(c, "Evento creado correctamente", e)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := resources.ParamID(c, "id")
	if !ok {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de evento inválido")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Evento no encontrado")
		}
		return respond.Internal(c, "Error al eliminar evento", err)
	}

	h.audit.Record(audit.Actor(c), "eliminacion_evento", map[string]interface{}{"evento_id": id})
	return respond.OK(c, "Evento eliminado correctamente", nil)
}
