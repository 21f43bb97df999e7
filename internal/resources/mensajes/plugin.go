package mensajes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/validation"
)

type Plugin struct {
	handler *Handler
}

func New(store Store, usuarios resources.UsuarioResolver, recorder audit.Recorder) *Plugin {
	return &Plugin{handler: NewHandler(NewService(store), usuarios, recorder)}
}

func (p *Plugin) ID() string { return "mensajes" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Mensaje{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, guards resources.Guards) {
	router.Post("/", validation.Body[CrearMensajeRequest](), p.handler.Create)

	router.Get("/", guards.Admin, p.handler.List)
	router.Patch("/:id", guards.Admin, validation.Body[ActualizarMensajeRequest](), p.handler.Update)
	router.Delete("/:id", guards.Admin, p.handler.Delete)
}
