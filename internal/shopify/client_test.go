package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Options{ShopName: "granito", Password: "shpat_test", APIVersion: "2024-01", BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Options{ShopName: "granito"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(Options{Password: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	c, err := NewClient(Options{ShopName: "granito", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "https://granito.myshopify.com/admin/api/2023-10", c.baseURL)
}

func TestProductsPagination(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-01/products.json", r.URL.Path)
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "250", r.URL.Query().Get("limit"))
		w.Header().Set("Link", `<https://granito.myshopify.com/admin/api/2024-01/products.json?limit=250&page_info=abc>; rel="next", <https://granito.myshopify.com/admin/api/2024-01/products.json?limit=250&page_info=xyz>; rel="previous"`)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"products": []map[string]interface{}{{"id": 1, "title": "Tabla Granito 8.25"}},
		})
	})

	products, page, err := c.Products(context.Background(), ListOptions{Limit: 1000})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tabla Granito 8.25", products[0].Title)
	assert.Equal(t, "abc", page.Next)
	assert.Equal(t, "xyz", page.Previous)
}

func TestOrdersQuery(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"orders":[]}`))
	})

	_, _, err := c.Orders(context.Background(), ListOptions{})
	require.NoError(t, err)
	_, _, err = c.Orders(context.Background(), ListOptions{PageInfo: "cursor", Status: "open"})
	require.NoError(t, err)

	assert.Equal(t, []string{"limit=50&status=any", "limit=50&page_info=cursor"}, seen)
}

func TestCustomerNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":"Not Found"}`, http.StatusNotFound)
	})

	_, err := c.Customer(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestBasicAuthWhenAPIKeySet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "pass", pass)
		_, _ = w.Write([]byte(`{"shop":{"id":1,"name":"Granito"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Options{ShopName: "granito", APIKey: "key", Password: "pass", BaseURL: srv.URL})
	require.NoError(t, err)
	shop, err := c.Shop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Granito", shop.Name)
}

func TestEnsureWebhooksCreatesOnlyMissing(t *testing.T) {
	var mu sync.Mutex
	var created []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"webhooks":[
				{"id":1,"topic":"customers/create","address":"https://api.granito.test/api/webhooks/customers/create"},
				{"id":2,"topic":"orders/create","address":"https://old.granito.test/api/webhooks/orders/create"}
			]}`))
		case http.MethodPost:
			var body struct {
				Webhook struct {
					Topic   string `json:"topic"`
					Address string `json:"address"`
				} `json:"webhook"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			mu.Lock()
			created = append(created, body.Webhook.Topic)
			mu.Unlock()
			if body.Webhook.Topic == "products/update" {
				http.Error(w, `{"errors":"boom"}`, http.StatusUnprocessableEntity)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"webhook": map[string]interface{}{
				"id": 100, "topic": body.Webhook.Topic, "address": body.Webhook.Address,
			}})
		}
	})

	res, err := c.EnsureWebhooks(context.Background(), "https://api.granito.test/")
	require.NoError(t, err)

	assert.Equal(t, []string{"customers/update", "customers/delete", "orders/create", "products/update"}, created)
	assert.Len(t, res.Existing, 1)
	assert.Len(t, res.Created, 3)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "products/update", res.Failed[0].Topic)
	assert.Equal(t, "https://api.granito.test/api/webhooks/products/update", res.Failed[0].Address)
}

func TestCustomerNames(t *testing.T) {
	c := Customer{ID: 207119551, FirstName: " Bob ", LastName: ""}
	assert.Equal(t, "207119551", c.ExternalID())
	assert.Equal(t, "Bob", c.FullName())
}
