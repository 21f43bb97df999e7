package favoritos

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
		return resources.UsuarioError(c, err, "Error al obtener favoritos")
	}

	favs, err := h.svc.List(c.UserContext(), usuarioID)
	if err != nil {
		return respond.Internal(c, "Error al obtener favoritos", err)
	}
	return respond.OK(c, "Favoritos obtenidos correctamente", favs)
}

func (h *Handler) Add(c *fiber.Ctx) error {
	req := validation.Get[CrearFavoritoRequest](c)

	usuarioID, err := h.usuarios.ResolveID(c.UserContext(), req.ShopifyCustomerID.String())
	if err != nil {
		return resources.UsuarioError(c, err, "Error al agregar favorito")
	}

	fav, created, err := h.svc.Add(c.UserContext(), usuarioID, req.IDProducto, req.NombreProducto)
	if err != nil {
		return respond.Internal(c, "Error al agregar favorito", err)
	}
	if !created {
		return respond.OK(c, "El producto ya está en favoritos", fav)
	}
	return respond.Created(c, "Producto agregado a favoritos", fav)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := resources.ParamID(c, "id")
	if !ok {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de favorito inválido")
	}

	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Favorito no encontrado")
		}
		return respond.Internal(c, "Error al eliminar favorito", err)
	}
	return respond.OK(c, "Favorito eliminado correctamente", nil)
}
