package shopify

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// Topic pairs a Shopify webhook topic with the path that receives it.
type Topic struct {
	Name string
	Path string
}

// Topics lists every webhook this service subscribes to.
var Topics = []Topic{
	{Name: "customers/create", Path: "/api/webhooks/customers/create"},
	{Name: "customers/update", Path: "/api/webhooks/customers/update"},
	{Name: "customers/delete", Path: "/api/webhooks/customers/delete"},
	{Name: "orders/create", Path: "/api/webhooks/orders/create"},
	{Name: "products/update", Path: "/api/webhooks/products/update"},
}

type WebhookFailure struct {
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Error   string `json:"error"`
}

type EnsureResult struct {
	Created  []Webhook        `json:"created"`
	Existing []Webhook        `json:"existing"`
	Failed   []WebhookFailure `json:"failed"`
}

func (c *Client) Webhooks(ctx context.Context) ([]Webhook, error) {
	var out struct {
		Webhooks []Webhook `json:"webhooks"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/webhooks.json", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Webhooks, nil
}

func (c *Client) CreateWebhook(ctx context.Context, topic, address string) (*Webhook, error) {
	body := map[string]interface{}{
		"webhook": map[string]string{"topic": topic, "address": address, "format": "json"},
	}
	var out struct {
		Webhook Webhook `json:"webhook"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/webhooks.json", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Webhook, nil
}

func (c *Client) DeleteWebhook(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/webhooks/"+strconv.FormatInt(id, 10)+".json", nil, nil, nil)
	return err
}

// EnsureWebhooks subscribes every topic in Topics under baseURL, skipping
// subscriptions that already point at the same address. A failing topic does
// not stop the remaining ones.
func (c *Client) EnsureWebhooks(ctx context.Context, baseURL string) (*EnsureResult, error) {
	existing, err := c.Webhooks(ctx)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(baseURL, "/")
	res := &EnsureResult{Created: []Webhook{}, Existing: []Webhook{}, Failed: []WebhookFailure{}}
	for _, t := range Topics {
		address := base + t.Path

		var found *Webhook
		for i := range existing {
			if existing[i].Topic == t.Name && existing[i].Address == address {
				found = &existing[i]
				break
			}
		}
		if found != nil {
			res.Existing = append(res.Existing, *found)
			continue
		}

		wh, err := c.CreateWebhook(ctx, t.Name, address)
		if err != nil {
			res.Failed = append(res.Failed, WebhookFailure{Topic: t.Name, Address: address, Error: err.Error()})
			continue
		}
		res.Created = append(res.Created, *wh)
	}
	return res, nil
}
