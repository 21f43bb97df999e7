package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/config"
	"github.com/granitoskate/backoffice/internal/database"
	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/handlers"
	"github.com/granitoskate/backoffice/internal/logging"
	"github.com/granitoskate/backoffice/internal/metrics"
	"github.com/granitoskate/backoffice/internal/middleware"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/resources/builds"
	"github.com/granitoskate/backoffice/internal/resources/encuestas"
	"github.com/granitoskate/backoffice/internal/resources/eventos"
	"github.com/granitoskate/backoffice/internal/resources/favoritos"
	"github.com/granitoskate/backoffice/internal/resources/mensajes"
	"github.com/granitoskate/backoffice/internal/resources/resenas"
	"github.com/granitoskate/backoffice/internal/resources/visitas"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/routes"
	"github.com/granitoskate/backoffice/internal/services"
	"github.com/granitoskate/backoffice/internal/shopify"
)

func main() {
	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	respond.ExposeErrors(cfg.Development())

	// Databases
	if err := database.Connect(cfg); err != nil {
		slog.Error("app database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.ConnectTheme(cfg); err != nil {
		slog.Error("theme database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelBoot()
	if err := database.EnsureThemeSchema(bootCtx); err != nil {
		slog.Error("theme schema bootstrap failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdoutHandler, pgLogHandler)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, 30*24*time.Hour, cleanupDone)

	auditLog := audit.NewLogger(audit.NewGormStore(database.DB), 512)

	// Shopify
	var shopifyClient *shopify.Client
	if !cfg.ShopifyConfigured() {
		slog.Warn("shopify credentials missing, shopify endpoints disabled")
	} else if client, err := shopify.NewClient(shopify.Options{
		ShopName:   cfg.ShopifyShopName,
		APIKey:     cfg.ShopifyAPIKey,
		Password:   cfg.ShopifyAPIPassword,
		APIVersion: cfg.ShopifyAPIVersion,
	}); err != nil {
		slog.Error("shopify client init failed", "error", err)
	} else {
		shopifyClient = client
		if shop, err := client.Shop(bootCtx); err != nil {
			slog.Warn("shopify connectivity check failed", "error", err)
		} else {
			slog.Info("shopify connected", "shop", shop.Name, "domain", shop.MyshopifyDomain)
		}
	}
	if cfg.ShopifyWebhookSecret == "" {
		slog.Warn("SHOPIFY_WEBHOOK_SECRET not set, every webhook will be rejected")
	}

	var dedupe shopify.Deduper = shopify.NopDeduper{}
	if cfg.WebhookDedupeTable != "" {
		d, err := shopify.NewDynamoDeduper(bootCtx, cfg.WebhookDedupeTable)
		if err != nil {
			slog.Error("webhook dedupe disabled", "table", cfg.WebhookDedupeTable, "error", err)
		} else {
			dedupe = d
			slog.Info("webhook dedupe enabled", "table", cfg.WebhookDedupeTable)
		}
	}

	// Services
	usuarioService := services.NewUsuarioService(services.NewGormUsuarioStore(database.DB))
	authService := services.NewAuthService(services.NewGormAdminStore(database.DB), auditLog, cfg)

	eventosPlugin := eventos.New(eventos.NewSQLStore(database.Theme), auditLog)
	resenasPlugin := resenas.New(resenas.NewSQLStore(database.Theme))
	adminService := services.NewAdminService(database.DB, resenasPlugin, eventosPlugin, audit.NewGormStore(database.DB))

	resourceList := []resources.Resource{
		favoritos.New(favoritos.NewGormStore(database.DB), usuarioService),
		builds.New(builds.NewGormStore(database.DB), usuarioService),
		mensajes.New(mensajes.NewGormStore(database.DB), usuarioService, auditLog),
		encuestas.New(encuestas.NewGormStore(database.DB), usuarioService),
		visitas.New(visitas.NewGormStore(database.DB), usuarioService),
		eventosPlugin,
		resenasPlugin,
	}

	// Migrate resource models
	for _, r := range resourceList {
		if models := r.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("resource migration failed", "resource", r.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("resource migrated", "resource", r.ID(), "models", len(models))
		}
	}

	// Handlers
	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Health:  handlers.NewHealthHandler(database.Ping, database.PingTheme, shopifyClient != nil),
		Usuario: handlers.NewUsuarioHandler(usuarioService),
		Admin:   handlers.NewAdminHandler(adminService, auditLog),
		Shopify: handlers.NewShopifyHandler(shopifyClient, usuarioService, auditLog, cfg.PublicURL),
		Webhook: handlers.NewWebhookHandler(usuarioService, auditLog, dedupe, cfg.ShopifyWebhookSecret),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(helmet.New())
	app.Use(metrics.Middleware())

	// Routes
	routes.Setup(app, cfg, h, resourceList)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "admin_auth", cfg.AdminAuthMode)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	auditLog.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)
	database.Close()

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Error interno del servidor"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Error interno del servidor"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Success: false, Message: message})
}
