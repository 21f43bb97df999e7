package eventos

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/validation"
)

type Plugin struct {
	svc     *Service
	handler *Handler
}

func New(store Store, recorder audit.Recorder) *Plugin {
	svc := NewService(store)
	return &Plugin{svc: svc, handler: NewHandler(svc, recorder)}
}

func (p *Plugin) ID() string { return "eventos" }

// Models is empty: eventos lives in the theme database.
func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, guards resources.Guards) {
	router.Get("/", p.handler.List)
	router.Post("/", guards.Admin, validation.Body[CrearEventoRequest](), p.handler.Create)
	router.Delete("/:id", guards.Admin, p.handler.Delete)
}

// Count feeds the admin stats endpoint.
func (p *Plugin) Count(ctx context.Context) (int64, error) {
	return p.svc.Count(ctx)
}
