package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomnomnom/linkheader"
)

const (
	DefaultLimit = 50
	MaxLimit     = 250
)

var (
	ErrNotConfigured = errors.New("shopify: credentials not configured")
	ErrNotFound      = errors.New("shopify: resource not found")
)

// APIError is a non-2xx answer from the Admin API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify: status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Options struct {
	ShopName   string
	APIKey     string
	Password   string
	APIVersion string
	// BaseURL overrides the https://{shop}.myshopify.com host.
	BaseURL string
	Timeout time.Duration
}

// Client talks to the Shopify Admin REST API. It is safe for concurrent use.
type Client struct {
	baseURL  string
	apiKey   string
	password string
	http     *http.Client
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.ShopName) == "" || strings.TrimSpace(opts.Password) == "" {
		return nil, ErrNotConfigured
	}
	if opts.APIVersion == "" {
		opts.APIVersion = "2023-10"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	base := opts.BaseURL
	if base == "" {
		host := strings.TrimSpace(opts.ShopName)
		if !strings.Contains(host, ".") {
			host += ".myshopify.com"
		}
		base = "https://" + host
	}

	return &Client{
		baseURL:  strings.TrimRight(base, "/") + "/admin/api/" + opts.APIVersion,
		apiKey:   opts.APIKey,
		password: opts.Password,
		http:     &http.Client{Timeout: opts.Timeout},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (http.Header, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("shopify: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.SetBasicAuth(c.apiKey, c.password)
	} else {
		req.Header.Set("X-Shopify-Access-Token", c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("shopify: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.Header, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.Header, fmt.Errorf("shopify: decode %s: %w", path, err)
		}
	}
	return resp.Header, nil
}

func (c *Client) Shop(ctx context.Context) (*Shop, error) {
	var out struct {
		Shop Shop `json:"shop"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/shop.json", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Shop, nil
}

func (c *Client) Products(ctx context.Context, opts ListOptions) ([]Product, Page, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	h, err := c.do(ctx, http.MethodGet, "/products.json", listQuery(opts, false), nil, &out)
	if err != nil {
		return nil, Page{}, err
	}
	return out.Products, parsePage(h), nil
}

func (c *Client) Orders(ctx context.Context, opts ListOptions) ([]Order, Page, error) {
	if opts.Status == "" {
		opts.Status = "any"
	}
	var out struct {
		Orders []Order `json:"orders"`
	}
	h, err := c.do(ctx, http.MethodGet, "/orders.json", listQuery(opts, true), nil, &out)
	if err != nil {
		return nil, Page{}, err
	}
	return out.Orders, parsePage(h), nil
}

func (c *Client) Customers(ctx context.Context, opts ListOptions) ([]Customer, Page, error) {
	var out struct {
		Customers []Customer `json:"customers"`
	}
	h, err := c.do(ctx, http.MethodGet, "/customers.json", listQuery(opts, false), nil, &out)
	if err != nil {
		return nil, Page{}, err
	}
	return out.Customers, parsePage(h), nil
}

func (c *Client) Customer(ctx context.Context, id int64) (*Customer, error) {
	var out struct {
		Customer Customer `json:"customer"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/customers/"+strconv.FormatInt(id, 10)+".json", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}

// ClampLimit bounds a requested page size to what the API accepts.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func listQuery(opts ListOptions, withStatus bool) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(ClampLimit(opts.Limit)))
	// Cursor requests reject every filter except limit.
	if opts.PageInfo != "" {
		q.Set("page_info", opts.PageInfo)
		return q
	}
	if withStatus && opts.Status != "" {
		q.Set("status", opts.Status)
	}
	return q
}

func parsePage(h http.Header) Page {
	var p Page
	if h == nil {
		return p
	}
	for _, link := range linkheader.Parse(h.Get("Link")) {
		u, err := url.Parse(link.URL)
		if err != nil {
			continue
		}
		cursor := u.Query().Get("page_info")
		switch link.Rel {
		case "next":
			p.Next = cursor
		case "previous":
			p.Previous = cursor
		}
	}
	return p
}
