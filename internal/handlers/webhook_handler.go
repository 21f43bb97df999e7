package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/metrics"
	"github.com/granitoskate/backoffice/internal/services"
	"github.com/granitoskate/backoffice/internal/shopify"
)

// WebhookHandler receives Shopify deliveries. Shopify retries anything that
// is not a 2xx, so every signed delivery is acknowledged with 200 even when
// processing fails.
type WebhookHandler struct {
	usuarios *services.UsuarioService
	audit    audit.Recorder
	dedupe   shopify.Deduper
	secret   string
}

func NewWebhookHandler(usuarios *services.UsuarioService, recorder audit.Recorder, dedupe shopify.Deduper, secret string) *WebhookHandler {
	if dedupe == nil {
		dedupe = shopify.NopDeduper{}
	}
	return &WebhookHandler{usuarios: usuarios, audit: recorder, dedupe: dedupe, secret: secret}
}

// Handle returns the receiver for one topic.
func (h *WebhookHandler) Handle(topic string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if !shopify.VerifyWebhook(body, c.Get(shopify.HeaderHmac), h.secret) {
			metrics.WebhookEvent(topic, metrics.WebhookRejected)
			slog.Warn("webhook signature rejected", "topic", topic, "ip", c.IP())
			return c.Status(fiber.StatusUnauthorized).SendString("Webhook inválido")
		}

		ctx := c.UserContext()
		dup, err := h.dedupe.Claim(ctx, c.Get(shopify.HeaderWebhookID), c.Get(shopify.HeaderShopDomain), topic)
		if err != nil {
			slog.Warn("webhook dedupe unavailable", "topic", topic, "error", err)
		} else if dup {
			metrics.WebhookEvent(topic, metrics.WebhookDuplicate)
			slog.Info("duplicate webhook skipped", "topic", topic, "webhook_id", c.Get(shopify.HeaderWebhookID))
			return c.SendString("OK")
		}

		if err := h.process(ctx, topic, body); err != nil {
			metrics.WebhookEvent(topic, metrics.WebhookFailed)
			slog.Error("webhook processing failed", "topic", topic, "error", err)
			if hub := sentryfiber.GetHubFromContext(c); hub != nil {
				hub.CaptureException(err)
			}
			return c.SendString("Error procesado")
		}

		metrics.WebhookEvent(topic, metrics.WebhookProcessed)
		return c.SendString("OK")
	}
}

func (h *WebhookHandler) process(ctx context.Context, topic string, body []byte) error {
	switch topic {
	case "customers/create", "customers/update":
		var customer shopify.Customer
		if err := json.Unmarshal(body, &customer); err != nil {
			return fmt.Errorf("decode customer: %w", err)
		}
		reactivate := topic == "customers/create"
		u, err := h.usuarios.SyncCustomer(ctx, &customer, reactivate)
		if err != nil {
			return err
		}
		action := "customer_update"
		if reactivate {
			action = "customer_create"
		}
		h.audit.Record(audit.WebhookActor, action, map[string]interface{}{
			"shopify_customer_id": u.ShopifyCustomerID, "email": u.Email,
		})

	case "customers/delete":
		var payload struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return fmt.Errorf("decode customer: %w", err)
		}
		if payload.ID == 0 {
			return fmt.Errorf("customers/delete without id")
		}
		externalID := strconv.FormatInt(payload.ID, 10)
		found, err := h.usuarios.Deactivate(ctx, externalID)
		if err != nil {
			return err
		}
		h.audit.Record(audit.WebhookActor, "customer_delete", map[string]interface{}{
			"shopify_customer_id": externalID, "found": found,
		})

	case "orders/create":
		var order shopify.Order
		if err := json.Unmarshal(body, &order); err != nil {
			return fmt.Errorf("decode order: %w", err)
		}
		details := map[string]interface{}{"order_id": order.ID, "total": order.TotalPrice}
		if order.Customer != nil && order.Customer.ID != 0 {
			u, err := h.usuarios.SyncCustomer(ctx, order.Customer, false)
			if err != nil {
				return err
			}
			details["shopify_customer_id"] = u.ShopifyCustomerID
		}
		h.audit.Record(audit.WebhookActor, "order_create", details)

	case "products/update":
		var product shopify.Product
		if err := json.Unmarshal(body, &product); err != nil {
			return fmt.Errorf("decode product: %w", err)
		}
		h.audit.Record(audit.WebhookActor, "product_update", map[string]interface{}{
			"product_id": product.ID, "title": product.Title,
		})

	default:
		return fmt.Errorf("unhandled topic %q", topic)
	}
	return nil
}
