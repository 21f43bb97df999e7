package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/services"
	"github.com/granitoskate/backoffice/internal/validation"
)

type UsuarioHandler struct {
	usuarios *services.UsuarioService
}

func NewUsuarioHandler(usuarios *services.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarios: usuarios}
}

func (h *UsuarioHandler) Get(c *fiber.Ctx) error {
	u, err := h.usuarios.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrUsuarioNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, resources.MsgUsuarioNotFound)
		}
		return respond.Internal(c, "Error al obtener usuario", err)
	}
	return respond.OK(c, "Usuario obtenido correctamente", u)
}

func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	req := validation.Get[dto.CrearUsuarioRequest](c)

	u, created, err := h.usuarios.Create(c.UserContext(), req.ShopifyCustomerID.String(), req.Email, req.Nombre)
	if err != nil {
		return respond.Internal(c, "Error al crear usuario", err)
	}
	if !created {
		return respond.OK(c, "Usuario ya existe", fiber.Map{"id": u.ID})
	}
	return respond.Created(c, "Usuario creado correctamente", u)
}

func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	limit := resources.QueryLimit(c, 50, 200)
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	out, total, err := h.usuarios.List(c.UserContext(), limit, offset)
	if err != nil {
		return respond.Internal(c, "Error al obtener usuarios", err)
	}
	return respond.OK(c, "Usuarios obtenidos correctamente", dto.UsuarioPage{
		Usuarios: out, Total: total, Limit: limit, Offset: offset,
	})
}
