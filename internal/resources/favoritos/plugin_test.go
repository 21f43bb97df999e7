package favoritos

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usuariosByExternalID map[string]uint

func (u usuariosByExternalID) ResolveID(_ context.Context, id string) (uint, error) {
	if v, ok := u[id]; ok {
		return v, nil
	}
	return 0, services.ErrUsuarioNotFound
}

type memoryStore struct {
	mu     sync.Mutex
	rows   []Favorito
	nextID uint
}

func (m *memoryStore) ListByUsuario(_ context.Context, usuarioID uint) ([]Favorito, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Favorito
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UsuarioID == usuarioID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memoryStore) Find(_ context.Context, usuarioID uint, idProducto string) (*Favorito, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.rows {
		if f.UsuarioID == usuarioID && f.IDProducto == idProducto {
			cp := f
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) Create(_ context.Context, f *Favorito) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	f.ID = m.nextID
	m.rows = append(m.rows, *f)
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.rows {
		if f.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup() (*fiber.App, *memoryStore) {
	store := &memoryStore{}
	p := New(store, usuariosByExternalID{"cust-1": 10})
	app := fiber.New()
	p.RegisterRoutes(app.Group("/api/"+p.ID()), resources.Guards{})
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestAddFavoriteTwiceReturnsOriginal(t *testing.T) {
	app, store := setup()
	body := `{"shopify_customer_id":"cust-1","id_producto":"prod-9","nombre_producto":"Ruedas 54mm"}`

	status, first := call(t, app, "POST", "/api/favoritos", body)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, first.Success)

	status, second := call(t, app, "POST", "/api/favoritos", body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "El producto ya está en favoritos", second.Message)

	var a, b Favorito
	require.NoError(t, json.Unmarshal(first.Data, &a))
	require.NoError(t, json.Unmarshal(second.Data, &b))
	assert.Equal(t, a.ID, b.ID)
	assert.Len(t, store.rows, 1)
}

func TestAddFavoriteUnknownUser(t *testing.T) {
	app, store := setup()

	status, env := call(t, app, "POST", "/api/favoritos",
		`{"shopify_customer_id":"nobody","id_producto":"p","nombre_producto":"x"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, resources.MsgUsuarioNotFound, env.Message)
	assert.Empty(t, store.rows)
}

func TestAddFavoriteMissingField(t *testing.T) {
	app, _ := setup()

	status, env := call(t, app, "POST", "/api/favoritos", `{"shopify_customer_id":"cust-1","id_producto":"p"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "El campo 'nombre_producto' es requerido", env.Message)
}

func TestListAndDelete(t *testing.T) {
	app, _ := setup()
	call(t, app, "POST", "/api/favoritos", `{"shopify_customer_id":"cust-1","id_producto":"a","nombre_producto":"A"}`)
	call(t, app, "POST", "/api/favoritos", `{"shopify_customer_id":"cust-1","id_producto":"b","nombre_producto":"B"}`)

	status, env := call(t, app, "GET", "/api/favoritos/cust-1", "")
	require.Equal(t, fiber.StatusOK, status)
	var favs []Favorito
	require.NoError(t, json.Unmarshal(env.Data, &favs))
	require.Len(t, favs, 2)
	assert.Equal(t, "b", favs[0].IDProducto)

	status, _ = call(t, app, "DELETE", "/api/favoritos/1", "")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = call(t, app, "DELETE", "/api/favoritos/1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = call(t, app, "DELETE", "/api/favoritos/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAddFavoriteNumericCustomerID(t *testing.T) {
	store := &memoryStore{}
	p := New(store, usuariosByExternalID{"207119551": 10})
	app := fiber.New()
	p.RegisterRoutes(app.Group("/api/"+p.ID()), resources.Guards{})

	status, env := call(t, app, "POST", "/api/favoritos",
		`{"shopify_customer_id":207119551,"id_producto":"p","nombre_producto":"x"}`)
	assert.Equal(t, fiber.StatusCreated, status, env.Message)
	assert.True(t, env.Success)
	require.Len(t, store.rows, 1)
	assert.Equal(t, uint(10), store.rows[0].UsuarioID)
}
