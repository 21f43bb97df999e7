package resenas

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/validation"
)

type Plugin struct {
	svc     *Service
	handler *Handler
}

func New(store Store) *Plugin {
	svc := NewService(store)
	return &Plugin{svc: svc, handler: NewHandler(svc)}
}

func (p *Plugin) ID() string { return "resenas" }

func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, guards resources.Guards) {
	router.Get("/", guards.Admin, p.handler.List)
	router.Get("/:producto_id", p.handler.ListByProducto)
	router.Post("/", validation.Body[CrearResenaRequest](), p.handler.Create)
	router.Patch("/:id", guards.Admin, validation.Body[ActualizarResenaRequest](), p.handler.Update)
	router.Delete("/:id", guards.Admin, p.handler.Delete)
}

func (p *Plugin) Count(ctx context.Context) (int64, error) {
	return p.svc.Count(ctx)
}
