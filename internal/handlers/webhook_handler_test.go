package handlers

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/models"
	"github.com/granitoskate/backoffice/internal/services"
	"github.com/granitoskate/backoffice/internal/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec"

type memUsuarios struct {
	mu     sync.Mutex
	rows   map[string]*models.Usuario
	writes int
	fail   error
}

func newMemUsuarios() *memUsuarios { return &memUsuarios{rows: map[string]*models.Usuario{}} }

func (m *memUsuarios) FindByShopifyID(_ context.Context, id string) (*models.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, services.ErrUsuarioNotFound
}

func (m *memUsuarios) CreateIfAbsent(_ context.Context, u *models.Usuario) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	if existing, ok := m.rows[u.ShopifyCustomerID]; ok {
		*u = *existing
		return false, nil
	}
	m.writes++
	u.ID = uint(len(m.rows) + 1)
	cp := *u
	m.rows[u.ShopifyCustomerID] = &cp
	return true, nil
}

func (m *memUsuarios) Upsert(_ context.Context, u *models.Usuario, reactivate bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.writes++
	if existing, ok := m.rows[u.ShopifyCustomerID]; ok {
		existing.Email, existing.Nombre = u.Email, u.Nombre
		if reactivate {
			existing.Activo = true
		}
		u.ID = existing.ID
		return nil
	}
	u.ID = uint(len(m.rows) + 1)
	cp := *u
	m.rows[u.ShopifyCustomerID] = &cp
	return nil
}

func (m *memUsuarios) Deactivate(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	m.writes++
	u, ok := m.rows[id]
	if ok {
		u.Activo = false
	}
	return ok, nil
}

// List pages newest first by id.
func (m *memUsuarios) List(_ context.Context, limit, offset int) ([]models.Usuario, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]models.Usuario, 0, len(m.rows))
	for _, u := range m.rows {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Usuario{}, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

type memRecorder struct {
	mu      sync.Mutex
	actors  []string
	actions []string
}

func (r *memRecorder) Record(actor, action string, _ map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actors = append(r.actors, actor)
	r.actions = append(r.actions, action)
}

type seenDeduper struct{ seen map[string]bool }

func (d *seenDeduper) Claim(_ context.Context, id, _, _ string) (bool, error) {
	if d.seen[id] {
		return true, nil
	}
	d.seen[id] = true
	return false, nil
}

func newWebhookApp(store *memUsuarios, rec *memRecorder, dedupe shopify.Deduper) *fiber.App {
	h := NewWebhookHandler(services.NewUsuarioService(store), rec, dedupe, webhookSecret)
	app := fiber.New()
	for _, t := range shopify.Topics {
		app.Post(t.Path, h.Handle(t.Name))
	}
	return app
}

func deliver(t *testing.T, app *fiber.App, path, body, sig, id string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sig != "" {
		req.Header.Set(shopify.HeaderHmac, sig)
	}
	if id != "" {
		req.Header.Set(shopify.HeaderWebhookID, id)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	store := newMemUsuarios()
	rec := &memRecorder{}
	app := newWebhookApp(store, rec, nil)
	body := `{"id":42,"email":"kim@granito.test","first_name":"Kim"}`

	status, text := deliver(t, app, "/api/webhooks/customers/create", body, "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Webhook inválido", text)

	status, _ = deliver(t, app, "/api/webhooks/customers/create", body, shopify.Sign([]byte(body), "wrong"), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	assert.Zero(t, store.writes)
	assert.Empty(t, rec.actions)
}

func TestWebhookMissingSecretFailsClosed(t *testing.T) {
	store := newMemUsuarios()
	h := NewWebhookHandler(services.NewUsuarioService(store), &memRecorder{}, nil, "")
	app := fiber.New()
	app.Post("/hook", h.Handle("customers/create"))

	body := `{"id":42}`
	status, _ := deliver(t, app, "/hook", body, shopify.Sign([]byte(body), ""), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Zero(t, store.writes)
}

func TestWebhookCustomerLifecycle(t *testing.T) {
	store := newMemUsuarios()
	rec := &memRecorder{}
	app := newWebhookApp(store, rec, nil)
	sign := func(b string) string { return shopify.Sign([]byte(b), webhookSecret) }

	created := `{"id":42,"email":"kim@granito.test","first_name":"Kim","last_name":"Lee"}`
	status, text := deliver(t, app, "/api/webhooks/customers/create", created, sign(created), "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", text)
	require.Contains(t, store.rows, "42")
	assert.Equal(t, "Kim Lee", store.rows["42"].Nombre)
	assert.True(t, store.rows["42"].Activo)

	deleted := `{"id":42}`
	status, _ = deliver(t, app, "/api/webhooks/customers/delete", deleted, sign(deleted), "")
	require.Equal(t, fiber.StatusOK, status)
	assert.False(t, store.rows["42"].Activo)

	order := `{"id":9001,"total_price":"59.90","customer":{"id":77,"email":"ana@granito.test","first_name":"Ana"}}`
	status, _ = deliver(t, app, "/api/webhooks/orders/create", order, sign(order), "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, store.rows, "77")

	assert.Equal(t, []string{"customer_create", "customer_delete", "order_create"}, rec.actions)
	for _, a := range rec.actors {
		assert.Equal(t, "Webhook Shopify", a)
	}
}

func TestWebhookFailureStillAcknowledged(t *testing.T) {
	store := newMemUsuarios()
	store.fail = errors.New("connection refused")
	rec := &memRecorder{}
	app := newWebhookApp(store, rec, nil)

	body := `{"id":42,"email":"kim@granito.test"}`
	status, text := deliver(t, app, "/api/webhooks/customers/update", body, shopify.Sign([]byte(body), webhookSecret), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Error procesado", text)
	assert.Empty(t, rec.actions)

	malformed := `{"id":`
	status, text = deliver(t, app, "/api/webhooks/products/update", malformed, shopify.Sign([]byte(malformed), webhookSecret), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Error procesado", text)
}

func TestWebhookDuplicateDeliverySkipped(t *testing.T) {
	store := newMemUsuarios()
	rec := &memRecorder{}
	app := newWebhookApp(store, rec, &seenDeduper{seen: map[string]bool{}})

	body := `{"id":5,"title":"Deck 8.25"}`
	sig := shopify.Sign([]byte(body), webhookSecret)
	for i := 0; i < 2; i++ {
		status, text := deliver(t, app, "/api/webhooks/products/update", body, sig, "delivery-1")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "OK", text)
	}
	assert.Equal(t, []string{"product_update"}, rec.actions)
}
