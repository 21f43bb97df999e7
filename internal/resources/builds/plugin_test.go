package builds

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/resources"
	"github.com/granitoskate/backoffice/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type oneUsuario struct{}

func (oneUsuario) ResolveID(_ context.Context, id string) (uint, error) {
	if id == "cust-1" {
		return 3, nil
	}
	return 0, services.ErrUsuarioNotFound
}

// jsonStore persists builds as JSON text to mimic the jsonb column.
type jsonStore struct {
	rows [][]byte
}

func (s *jsonStore) ListByUsuario(_ context.Context, usuarioID uint) ([]Build, error) {
	var out []Build
	for i := len(s.rows) - 1; i >= 0; i-- {
		var b Build
		if err := json.Unmarshal(s.rows[i], &b); err != nil {
			return nil, err
		}
		if b.UsuarioID == usuarioID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *jsonStore) Create(_ context.Context, b *Build) error {
	b.ID = uint(len(s.rows) + 1)
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	s.rows = append(s.rows, raw)
	return nil
}

func (s *jsonStore) Delete(_ context.Context, id uint) (bool, error) {
	return false, nil
}

func request(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestBuildComponentsRoundTrip(t *testing.T) {
	store := &jsonStore{}
	p := New(store, oneUsuario{})
	app := fiber.New()
	p.RegisterRoutes(app.Group("/api/builds"), resources.Guards{})

	status, _ := request(t, app, "POST", "/api/builds", `{
		"shopify_customer_id": "cust-1",
		"nombre_build": "Street",
		"tabla_id": "t-1",
		"ruedas_id": "r-2",
		"otros_componentes": {"rodamientos": "abec-7", "tornilleria": {"largo": 1.25, "color": "negro"}}
	}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = request(t, app, "POST", "/api/builds", `{"shopify_customer_id":"cust-1","nombre_build":"Bowl","tabla_id":"t-2"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, raw := request(t, app, "GET", "/api/builds/cust-1", "")
	require.Equal(t, fiber.StatusOK, status)

	var env struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Len(t, env.Data, 2)

	assert.Equal(t, "Bowl", env.Data[0]["nombre_build"])
	assert.Equal(t, map[string]interface{}{}, env.Data[0]["otros_componentes"])
	assert.Nil(t, env.Data[0]["ruedas_id"])

	assert.Equal(t, map[string]interface{}{
		"rodamientos": "abec-7",
		"tornilleria": map[string]interface{}{"largo": 1.25, "color": "negro"},
	}, env.Data[1]["otros_componentes"])
	assert.Equal(t, "r-2", env.Data[1]["ruedas_id"])
}

func TestCreateBuildValidation(t *testing.T) {
	p := New(&jsonStore{}, oneUsuario{})
	app := fiber.New()
	p.RegisterRoutes(app.Group("/api/builds"), resources.Guards{})

	status, raw := request(t, app, "POST", "/api/builds", `{"shopify_customer_id":"cust-1","nombre_build":"Street"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(raw), "El campo 'tabla_id' es requerido")

	status, _ = request(t, app, "POST", "/api/builds", `{"shopify_customer_id":"ghost","nombre_build":"Street","tabla_id":"t"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = request(t, app, "DELETE", "/api/builds/5", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}
