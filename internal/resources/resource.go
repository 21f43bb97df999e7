// Package resources holds the shared contract for the back-office CRUD
// resources mounted under /api.
package resources

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/respond"
	"github.com/granitoskate/backoffice/internal/services"
)

// Resource is implemented by every CRUD resource package.
type Resource interface {
	// ID is the route prefix under /api, e.g. "favoritos".
	ID() string

	// Models returns the GORM models to AutoMigrate in the app database.
	// Resources backed by the theme database return nil.
	Models() []interface{}

	// RegisterRoutes mounts the resource on a group already prefixed with
	// /api/<ID>.
	RegisterRoutes(router fiber.Router, guards Guards)
}

// Guards carries route-level middleware owned by the caller.
type Guards struct {
	// Admin gates back-office operations.
	Admin fiber.Handler
}

// UsuarioResolver maps an external customer id to usuarios.id.
type UsuarioResolver interface {
	ResolveID(ctx context.Context, shopifyCustomerID string) (uint, error)
}

const MsgUsuarioNotFound = "Usuario no encontrado"

// ParamID reads a positive integer path parameter.
func ParamID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// UsuarioError answers 404 for an unknown customer and 500 otherwise.
func UsuarioError(c *fiber.Ctx, err error, internalMsg string) error {
	if errors.Is(err, services.ErrUsuarioNotFound) {
		return respond.Fail(c, fiber.StatusNotFound, MsgUsuarioNotFound)
	}
	return respond.Internal(c, internalMsg, err)
}

// QueryLimit reads ?limit bounded to [1, max], falling back to def.
func QueryLimit(c *fiber.Ctx, def, max int) int {
	n := c.QueryInt("limit", def)
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
