package builds

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

func (p *Plugin) ID() string { return "builds" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Build{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, _ resources.Guards) {
	router.Get("/:usuario_id", p.handler.List)
	router.Post("/", validation.Body[CrearBuildRequest](), p.handler.Create)
	router.Delete("/:id", p.handler.Delete)
}
