package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/granitoskate/backoffice/internal/models"
	"github.com/granitoskate/backoffice/internal/shopify"
)

var ErrUsuarioNotFound = errors.New("usuario not found")

type UsuarioStore interface {
	FindByShopifyID(ctx context.Context, shopifyCustomerID string) (*models.Usuario, error)
	// CreateIfAbsent inserts u unless the external id exists, in which case
	// u is filled with the stored row and created is false.
	CreateIfAbsent(ctx context.Context, u *models.Usuario) (created bool, err error)
	// Upsert inserts or updates by shopify_customer_id in one statement.
	Upsert(ctx context.Context, u *models.Usuario, reactivate bool) error
	Deactivate(ctx context.Context, shopifyCustomerID string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]models.Usuario, int64, error)
}

type UsuarioService struct {
	store UsuarioStore
}

func NewUsuarioService(store UsuarioStore) *UsuarioService {
	return &UsuarioService{store: store}
}

// ResolveID maps an external customer id to the internal usuarios.id.
func (s *UsuarioService) ResolveID(ctx context.Context, shopifyCustomerID string) (uint, error) {
	u, err := s.Get(ctx, shopifyCustomerID)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (s *UsuarioService) Get(ctx context.Context, shopifyCustomerID string) (*models.Usuario, error) {
	id := strings.TrimSpace(shopifyCustomerID)
	if id == "" {
		return nil, ErrUsuarioNotFound
	}
	return s.store.FindByShopifyID(ctx, id)
}

// Create registers a customer the storefront saw first. An existing row is
// returned untouched with created=false.
func (s *UsuarioService) Create(ctx context.Context, shopifyCustomerID, email, nombre string) (*models.Usuario, bool, error) {
	u := &models.Usuario{
		ShopifyCustomerID: strings.TrimSpace(shopifyCustomerID),
		Email:             strings.TrimSpace(email),
		Nombre:            strings.TrimSpace(nombre),
		Activo:            true,
	}
	created, err := s.store.CreateIfAbsent(ctx, u)
	if err != nil {
		return nil, false, fmt.Errorf("create usuario: %w", err)
	}
	return u, created, nil
}

// SyncCustomer mirrors a Shopify customer into usuarios. reactivate also
// sets activo=true, used for customers/create deliveries.
func (s *UsuarioService) SyncCustomer(ctx context.Context, c *shopify.Customer, reactivate bool) (*models.Usuario, error) {
	if c == nil || c.ID == 0 {
		return nil, errors.New("customer without id")
	}
	u := &models.Usuario{
		ShopifyCustomerID: c.ExternalID(),
		Email:             c.Email,
		Nombre:            c.FullName(),
		Activo:            true,
	}
	if err := s.store.Upsert(ctx, u, reactivate); err != nil {
		return nil, fmt.Errorf("upsert usuario %s: %w", u.ShopifyCustomerID, err)
	}
	return u, nil
}

// Deactivate flips activo to false. found is false when no row matched.
func (s *UsuarioService) Deactivate(ctx context.Context, shopifyCustomerID string) (bool, error) {
	found, err := s.store.Deactivate(ctx, shopifyCustomerID)
	if err != nil {
		return false, fmt.Errorf("deactivate usuario %s: %w", shopifyCustomerID, err)
	}
	return found, nil
}

func (s *UsuarioService) List(ctx context.Context, limit, offset int) ([]models.Usuario, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, limit, offset)
}
