package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/dto"
)

type HealthHandler struct {
	pingApp   func() error
	pingTheme func() error
	shopify   bool
}

func NewHealthHandler(pingApp, pingTheme func() error, shopifyConfigured bool) *HealthHandler {
	return &HealthHandler{pingApp: pingApp, pingTheme: pingTheme, shopify: shopifyConfigured}
}

// Check reports 503 when either database is unreachable.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:            "ok",
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		AppDB:             status(h.pingApp),
		ThemeDB:           status(h.pingTheme),
		ShopifyConfigured: h.shopify,
	}
	code := fiber.StatusOK
	if resp.AppDB != "ok" || resp.ThemeDB != "ok" {
		resp.Status = "degraded"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(resp)
}

func status(ping func() error) string {
	if err := ping(); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "ok"
}
