package shopify

import (
	"strconv"
	"strings"
	"time"
)

type Shop struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Domain          string `json:"domain"`
	MyshopifyDomain string `json:"myshopify_domain"`
	Currency        string `json:"currency"`
	Timezone        string `json:"iana_timezone"`
	PlanName        string `json:"plan_name"`
}

type Customer struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone,omitempty"`
	OrdersCount int       `json:"orders_count"`
	TotalSpent  string    `json:"total_spent,omitempty"`
	State       string    `json:"state,omitempty"`
	Tags        string    `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExternalID is the customer id as stored in usuarios.shopify_customer_id.
func (c *Customer) ExternalID() string {
	return strconv.FormatInt(c.ID, 10)
}

// FullName joins first and last name, trimming empty parts.
func (c *Customer) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

type Variant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Status      string    `json:"status"`
	Tags        string    `json:"tags"`
	Variants    []Variant `json:"variants"`
	Images      []Image   `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LineItem struct {
	ID        int64  `json:"id"`
	ProductID *int64 `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type Order struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	TotalPrice        string     `json:"total_price"`
	Currency          string     `json:"currency"`
	FinancialStatus   string     `json:"financial_status"`
	FulfillmentStatus *string    `json:"fulfillment_status"`
	Customer          *Customer  `json:"customer"`
	LineItems         []LineItem `json:"line_items"`
	CreatedAt         time.Time  `json:"created_at"`
}

type Webhook struct {
	ID        int64     `json:"id"`
	Topic     string    `json:"topic"`
	Address   string    `json:"address"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
}

// Page holds the cursors parsed from a list response's Link header.
type Page struct {
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

type ListOptions struct {
	Limit    int
	PageInfo string
	// Status filters orders; ignored for other resources.
	Status string
}
