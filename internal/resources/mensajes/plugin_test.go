package mensajes

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolver struct{}

func (resolver) ResolveID(_ context.Context, id string) (uint, error) {
	if id == "cust-1" {
		return 1, nil
	}
	return 0, services.ErrUsuarioNotFound
}

type recorder struct {
	mu      sync.Mutex
	actions []string
	actors  []string
}

func (r *recorder) Record(actor, action string, _ map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	r.actors = append(r.actors, actor)
}

type memoryStore struct {
	rows    map[uint]*Mensaje
	nextID  uint
	deletes int
}

func newMemoryStore() *memoryStore { return &memoryStore{rows: map[uint]*Mensaje{}} }

func (m *memoryStore) Create(_ context.Context, msg *Mensaje) error {
	m.nextID++
	msg.ID = m.nextID
	cp := *msg
	m.rows[msg.ID] = &cp
	return nil
}

func (m *memoryStore) List(_ context.Context, estado string) ([]MensajeConUsuario, error) {
	var out []MensajeConUsuario
	for id := m.nextID; id > 0; id-- {
		msg, ok := m.rows[id]
		if !ok || (estado != "" && msg.Estado != estado) {
			continue
		}
		out = append(out, MensajeConUsuario{Mensaje: *msg, ShopifyCustomerID: "cust-1"})
	}
	return out, nil
}

func (m *memoryStore) Update(_ context.Context, id uint, estado string, respuesta *string) (*Mensaje, error) {
	msg, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	msg.Estado = estado
	if respuesta != nil {
		msg.RespuestaAdmin = respuesta
	}
	cp := *msg
	return &cp, nil
}

func (m *memoryStore) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	m.deletes++
	return true, nil
}

func setup(adminAllowed bool) (*fiber.App, *memoryStore, *recorder) {
	store := newMemoryStore()
	rec := &recorder{}
	p := New(store, resolver{}, rec)
	app := fiber.New()
	guard := func(c *fiber.Ctx) error {
		if !adminAllowed {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.Next()
	}
	p.RegisterRoutes(app.Group("/api/mensajes"), resources.Guards{Admin: guard})
	return app, store, rec
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]interface{}{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestCreateMessageDefaultsToPendiente(t *testing.T) {
	app, store, _ := setup(true)

	status, env := do(t, app, "POST", "/api/mensajes", `{"shopify_customer_id":"cust-1","asunto":"Talla","mensaje":"¿Tienen 8.5?"}`)
	require.Equal(t, fiber.StatusCreated, status)
	data := env["data"].(map[string]interface{})
	assert.Equal(t, EstadoPendiente, data["estado"])
	assert.Equal(t, "¿Tienen 8.5?", data["mensaje"])
	assert.Len(t, store.rows, 1)
}

func TestDeleteUnknownMessageIs404(t *testing.T) {
	app, store, rec := setup(true)

	status, env := do(t, app, "DELETE", "/api/mensajes/42", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, 0, store.deletes)
	assert.Empty(t, rec.actions)
}

func TestAdminFlowIsAudited(t *testing.T) {
	app, _, rec := setup(true)
	do(t, app, "POST", "/api/mensajes", `{"shopify_customer_id":"cust-1","asunto":"A","mensaje":"B"}`)

	status, env := do(t, app, "GET", "/api/mensajes?estado=pendiente", "", "Admin-Name", "Laura")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, env["data"], 1)

	status, env = do(t, app, "PATCH", "/api/mensajes/1", `{"estado":"respondido","respuesta_admin":"Sí, hay stock"}`, "Admin-Name", "Laura")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Sí, hay stock", env["data"].(map[string]interface{})["respuesta_admin"])

	status, _ = do(t, app, "PATCH", "/api/mensajes/1", `{"estado":"archivado"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "GET", "/api/mensajes?estado=otro", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "DELETE", "/api/mensajes/1", "")
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, []string{"consulta_mensajes", "respuesta_mensaje", "eliminacion_mensaje"}, rec.actions)
	assert.Equal(t, []string{"Laura", "Laura", audit.DefaultActor}, rec.actors)
}

func TestAdminRoutesAreGuarded(t *testing.T) {
	app, _, _ := setup(false)

	status, _ := do(t, app, "GET", "/api/mensajes", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = do(t, app, "DELETE", "/api/mensajes/1", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, "POST", "/api/mensajes", `{"shopify_customer_id":"cust-1","asunto":"A","mensaje":"B"}`)
	assert.Equal(t, fiber.StatusCreated, status)
}
