package routes

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/granitoskate/backoffice/internal/config"
	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/handlers"
	"github.com/granitoskate/backoffice/internal/metrics"
	"github.com/granitoskate/backoffice/internal/middleware"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/shopify"
	"github.com/granitoskate/backoffice/internal/validation"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Usuario *handlers.UsuarioHandler
	Admin   *handlers.AdminHandler
	Shopify *handlers.ShopifyHandler
	Webhook *handlers.WebhookHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers, resourceList []resources.Resource) {
	app.Get("/", func(c *fiber.Ctx) error {
		return respond.OK(c, "GranitoSkate API", fiber.Map{"health": "/api/health", "admin": "/admin"})
	})

	adminRequired := middleware.AdminRequired(cfg)
	jwtProtected := middleware.JWTProtected(cfg)

	app.Get("/metrics", adminRequired, metrics.Handler())

	api := app.Group("/api")

	// Global limiter per IP. Shopify retries webhooks on 429, so they are exempt.
	api.Use(limiter.New(limiter.Config{
		Max:          cfg.RateLimitMax,
		Expiration:   cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() },
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/webhooks/")
		},
		LimitReached: tooManyRequests,
	}))

	api.Get("/health", h.Health.Check)

	// Auth: 10 req/min per IP on top of the global limiter
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached:      tooManyRequests,
	}))
	auth.Post("/login", validation.Body[dto.LoginRequest](), h.Auth.Login)
	auth.Post("/register", adminRequired, validation.Body[dto.RegisterRequest](), h.Auth.Register)
	auth.Get("/verify", jwtProtected, h.Auth.Verify)
	auth.Post("/refresh", jwtProtected, h.Auth.Refresh)
	auth.Post("/change-password", jwtProtected, validation.Body[dto.ChangePasswordRequest](), h.Auth.ChangePassword)

	usuarios := api.Group("/usuarios")
	usuarios.Get("/", adminRequired, h.Usuario.List)
	usuarios.Get("/:id", h.Usuario.Get)
	usuarios.Post("/", validation.Body[dto.CrearUsuarioRequest](), h.Usuario.Create)

	admin := api.Group("/admin", adminRequired)
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/log", h.Admin.Log)

	shop := api.Group("/shopify", adminRequired, h.Shopify.RequireClient)
	shop.Get("/shop", h.Shopify.Shop)
	shop.Get("/products", h.Shopify.Products)
	shop.Get("/orders", h.Shopify.Orders)
	shop.Get("/customers", h.Shopify.Customers)
	shop.Get("/webhooks", h.Shopify.Webhooks)
	shop.Post("/setup-webhooks", h.Shopify.SetupWebhooks)
	shop.Delete("/webhooks/:id", h.Shopify.DeleteWebhook)
	shop.Post("/sync-customer/:id", h.Shopify.SyncCustomer)

	// Webhooks authenticate by HMAC over the raw body
	for _, t := range shopify.Topics {
		app.Post(t.Path, h.Webhook.Handle(t.Name))
	}

	guards := resources.Guards{Admin: adminRequired}
	for _, r := range resourceList {
		r.RegisterRoutes(api.Group("/"+r.ID()), guards)
	}

	mountAdmin(app, cfg.AdminDir)
}

// mountAdmin serves the dashboard and falls back to index.html so client-side
// paths survive a reload.
func mountAdmin(app *fiber.App, dir string) {
	app.Static("/admin", dir, fiber.Static{Index: "index.html"})
	index := filepath.Join(dir, "index.html")
	app.Get("/admin/*", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})
}

func tooManyRequests(c *fiber.Ctx) error {
	return respond.Fail(c, fiber.StatusTooManyRequests, "Demasiadas peticiones, intente más tarde")
}
