package encuestas

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

func (p *Plugin) ID() string { return "encuestas" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Encuesta{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, guards resources.Guards) {
	router.Post("/", validation.Body[CrearEncuestaRequest](), p.handler.Create)
	router.Get("/", guards.Admin, p.handler.List)
	router.Delete("/:id", guards.Admin, p.handler.Delete)
}
