package mensajes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/validation"
)

type Handler struct {
	svc      *Service
	usuarios resources.UsuarioResolver
	audit    audit.Recorder
}

func NewHandler(svc *Service, usuarios resources.UsuarioResolver, recorder audit.Recorder) *Handler {
	return &Handler{svc: svc, usuarios: usuarios, audit: recorder}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	req := validation.Get[CrearMensajeRequest](c)

	usuarioID, err := h.usuarios.ResolveID(c.UserContext(), req.ShopifyCustomerID.String())
	if err != nil {
		return resources.UsuarioError(c, err, "Error al enviar mensaje")
	}
	m, err := h.svc.Create(c.UserContext(), usuarioID, req.Asunto, req.Mensaje)
	if err != nil {
		return respond.Internal(c, "Error al enviar mensaje", err)
	}
	return respond.Created(c, "Mensaje enviado correctamente", m)
}

func (h *Handler) List(c *fiber.Ctx) error {
	estado := c.Query("estado")
	out, err := h.svc.List(c.UserContext(), estado)
	if err != nil {
		if errors.Is(err, ErrInvalidEstado) {
			return respond.Fail(c, fiber.StatusBadRequest, "Estado de mensaje inválido")
		}
		return respond.Internal(c, "Error al obtener mensajes", err)
	}

	h.audit.Record(audit.Actor(c), "consulta_mensajes", map[string]interface{}{
		"estado": estado, "total": len(out),
	})
	return respond.OK(c, "Mensajes obtenidos correctamente", out)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, ok := resources.ParamID(c, "id")
	if !ok {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de mensaje inválido")
	}
	req := validation.Get[ActualizarMensajeRequest](c)

	m, err := h.svc.Update(c.UserContext(), id, req.Estado, req.RespuestaAdmin)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return respond.Fail(c, fiber.StatusNotFound, "Mensaje no encontrado")
		case errors.Is(err, ErrInvalidEstado):
			return respond.Fail(c, fiber.StatusBadRequest, "Estado de mensaje inválido")
		}
		return respond.Internal(c, "Error al actualizar mensaje", err)
	}

	h.audit.Record(audit.Actor(c), "respuesta_mensaje", map[string]interface{}{
		"mensaje_id": id, "estado": req.Estado, "con_respuesta": req.RespuestaAdmin != nil,
	})
	return respond.OK(c, "Mensaje actualizado correctamente", m)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := resources.ParamID(c, "id")
	if !ok {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de mensaje inválido")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Mensaje no encontrado")
		}
		return respond.Internal(c, "Error al eliminar mensaje", err)
	}

	h.audit.Record(audit.Actor(c), "eliminacion_mensaje", map[string]interface{}{"mensaje_id": id})
	return respond.OK(c, "Mensaje eliminado correctamente", nil)
}
