package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/services"
	"github.com/granitoskate/backoffice/internal/shopify"
	"github.com/granitoskate/backoffice/internal/validation"
)

const msgShopifyNotConfigured = "Shopify no está configurado"

// ShopifyHandler exposes the Admin API to the dashboard. A nil client means
// Shopify credentials are missing and every route answers 503.
type ShopifyHandler struct {
	client    *shopify.Client
	usuarios  *services.UsuarioService
	audit     audit.Recorder
	publicURL string
}

func NewShopifyHandler(client *shopify.Client, usuarios *services.UsuarioService, recorder audit.Recorder, publicURL string) *ShopifyHandler {
	return &ShopifyHandler{client: client, usuarios: usuarios, audit: recorder, publicURL: publicURL}
}

// RequireClient short-circuits with 503 when Shopify is not configured.
func (h *ShopifyHandler) RequireClient(c *fiber.Ctx) error {
	if h.client == nil {
		return respond.Fail(c, fiber.StatusServiceUnavailable, msgShopifyNotConfigured)
	}
	return c.Next()
}

func (h *ShopifyHandler) Shop(c *fiber.Ctx) error {
	shop, err := h.client.Shop(c.UserContext())
	if err != nil {
		return respond.Upstream(c, fiber.StatusBadGateway, "Error al obtener información de la tienda", err)
	}
	return respond.OK(c, "Información de la tienda obtenida correctamente", shop)
}

func (h *ShopifyHandler) Products(c *fiber.Ctx) error {
	items, page, err := h.client.Products(c.UserContext(), listOptions(c))
	if err != nil {
		return respond.Upstream(c, fiber.StatusBadGateway, "Error al obtener productos", err)
	}
	return respond.OK(c, "Productos obtenidos correctamente", fiber.Map{"products": items, "pagination": page})
}

func (h *ShopifyHandler) Orders(c *fiber.Ctx) error {
	items, page, err := h.client.Orders(c.UserContext(), listOptions(c))
	if err != nil {
		return respond.Upstream(c, fiber.StatusBadGateway, "Error al obtener pedidos", err)
	}
	return respond.OK(c, "Pedidos obtenidos correctamente", fiber.Map{"orders": items, "pagination": page})
}

func (h *ShopifyHandler) Customers(c *fiber.Ctx) error {
	items, page, err := h.client.Customers(c.UserContext(), listOptions(c))
	if err != nil {
		return respond.Upstream(c, fiber.StatusBadGateway, "Error al obtener clientes", err)
	}
	return respond.OK(c, "Clientes obtenidos correctamente", fiber.Map{"customers": items, "pagination": page})
}

func (h *ShopifyHandler) Webhooks(c *fiber.Ctx) error {
	hooks, err := h.client.Webhooks(c.UserContext())
	if err != nil {
		return respond.Upstream(c, fiber.StatusBadGateway, "Error al obtener webhooks", err)
	}
	return respond.OK(c, "Webhooks obtenidos correctamente", hooks)
}

// SetupWebhooks subscribes every handled topic. The callback base is the
// body's baseUrl, else API_URL, else the caller's origin.
func (h *ShopifyHandler) SetupWebhooks(c *fiber.Ctx) error {
	var req dto.SetupWebhooksRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respond.Fail(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if err := validation.Struct(&req); err != nil {
			return respond.Fail(c, fiber.StatusBadRequest, err.Error())
		}
	}

	base := strings.TrimRight(req.BaseURL, "/")
	if base == "" {
		base = h.publicURL
	}
	if base == "" {
		base = strings.TrimRight(c.BaseURL(), "/")
	}

	res, err := h.client.EnsureWebhooks(c.UserContext(), base)
	if err != nil {
		return respond.Upstream(c, fiber.StatusBadGateway, "Error al configurar webhooks", err)
	}

	h.audit.Record(audit.Actor(c), "setup_webhooks", map[string]interface{}{
		"base_url": base,
		"created":  len(res.Created),
		"existing": len(res.Existing),
		"failed":   len(res.Failed),
	})
	return respond.OK(c, "Webhooks configurados correctamente", res)
}

func (h *ShopifyHandler) DeleteWebhook(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de webhook inválido")
	}

	if err := h.client.DeleteWebhook(c.UserContext(), id); err != nil {
		if errors.Is(err, shopify.ErrNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Webhook no encontrado")
		}
		return respond.Upstream(c, fiber.StatusBadGateway, "Error al eliminar webhook", err)
	}

	h.audit.Record(audit.Actor(c), "delete_webhook", map[string]interface{}{"webhook_id": id})
	return respond.OK(c, "Webhook eliminado correctamente", nil)
}

// SyncCustomer pulls one customer from Shopify and upserts it locally.
func (h *ShopifyHandler) SyncCustomer(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.Fail(c, fiber.StatusBadRequest, "ID de cliente inválido")
	}

	customer, err := h.client.Customer(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, shopify.ErrNotFound) {
			return respond.Fail(c, fiber.StatusNotFound, "Cliente no encontrado en Shopify")
		}
		return respond.Upstream(c, fiber.StatusBadGateway, "Error al obtener cliente de Shopify", err)
	}

	u, err := h.usuarios.SyncCustomer(c.UserContext(), customer, false)
	if err != nil {
		return respond.Internal(c, "Error al sincronizar cliente", err)
	}

	h.audit.Record(audit.Actor(c), "sync_customer", map[string]interface{}{
		"shopify_customer_id": u.ShopifyCustomerID, "usuario_id": u.ID,
	})
	return respond.OK(c, "Cliente sincronizado correctamente", fiber.Map{
		"customer":    customer,
		"internal_id": u.ID,
	})
}

func listOptions(c *fiber.Ctx) shopify.ListOptions {
	return shopify.ListOptions{
		Limit:    c.QueryInt("limit", shopify.DefaultLimit),
		PageInfo: c.Query("page_info"),
		Status:   c.Query("status"),
	}
}
