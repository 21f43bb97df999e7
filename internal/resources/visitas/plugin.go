package visitas

import (
	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/validation"
)

type Plugin struct {
	handler *Handler
}

func New(store Store, usuarios resources.UsuarioResolver) *Plugin {
	return &Plugin{handler: NewHandler(NewService(store), usuarios)}
}

func (p *Plugin) ID() string { return "visitas" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Visita{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, guards resources.Guards) {
	router.Post("/", validation.Body[RegistrarVisitaRequest](), p.handler.Record)
	router.Get("/:producto_id", guards.Admin, p.handler.ListByProducto)
}
