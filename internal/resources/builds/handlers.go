package builds

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

func (h *Handler) List(c *fiber.Ctx) error {
	usuarioID, err := h.usuarios.ResolveID(c.UserContext(), c.Params("usuario_id"))
	if err != nil {
		return resources.UsuarioError(c, err, "Error al obtener builds")
	}
	out, err := h.svc.List(c.UserContext(), usuarioID)
	if err != nil {
		return respond.Internal(c, "Error al obtener builds", err)
	}
	return respond.OK(c, "Builds obtenidos correctamente", out)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	req := validation.Get[CrearBuildRequest](c)

	usuarioID, err := h.usuarios.ResolveID(c.UserContext(), req.ShopifyCustomerID.String())
	if err != nil {
		return resources.UsuarioError(c, err, "Error al guardar build")
	}
	b, err := h.svc.Create(c.UserContext(), usuarioID, req)
	if err != nil {
		return respond.Internal(c, "Error al guardar build", err)
	}
	return respond.Created(c, "Build guardado correctamente", b)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := resources.ParamID(c, "id")
	if !ok {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de build inválido")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Build no encontrado")
		}
		return respond.Internal(c, "Error al eliminar build", err)
	}
	return respond.OK(c, "Build eliminado correctamente", nil)
}
