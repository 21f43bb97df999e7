package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/services"
)

type AdminHandler struct {
	admin *services.AdminService
	audit audit.Recorder
}

func NewAdminHandler(admin *services.AdminService, recorder audit.Recorder) *AdminHandler {
	return &AdminHandler{admin: admin, audit: recorder}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	st, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return respond.Internal(c, "Error al obtener estadísticas", err)
	}
	h.audit.Record(audit.Actor(c), "consulta_estadisticas", nil)
	return respond.OK(c, "Estadísticas obtenidas correctamente", st)
}

// Log lists audit entries, newest first. ?admin and ?tipo filter exactly;
// ?offset pages past the first ?limit rows.
func (h *AdminHandler) Log(c *fiber.Ctx) error {
	f := audit.Filter{
		Limit:  resources.QueryLimit(c, audit.DefaultListLimit, audit.MaxListLimit),
		Offset: c.QueryInt("offset", 0),
		Actor:  c.Query("admin"),
		Tipo:   c.Query("tipo"),
	}
	entries, err := h.admin.Log(c.UserContext(), f)
	if err != nil {
		return respond.Internal(c, "Error al obtener registro de acciones", err)
	}
	return respond.OK(c, "Registro de acciones obtenido correctamente", entries)
}
