package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/granitoskate/backoffice/internal/config"
	"github.com/granitoskate/backoffice/internal/dto"
)

// APIKeyHeader carries the shared static admin key.
const APIKeyHeader = "X-API-Key"

// AdminRequired gates back-office routes. Depending on cfg.AdminAuthMode a
// request must present the static API key, a valid admin JWT, either one,
// or both.
func AdminRequired(cfg *config.Config) fiber.Handler {
	mode := cfg.AdminAuthMode
	apiKey := []byte(cfg.AdminAPIKey)
	secret := []byte(cfg.JWTSecret)

	return func(c *fiber.Ctx) error {
		keyOK := len(apiKey) > 0 &&
			subtle.ConstantTimeCompare([]byte(c.Get(APIKeyHeader)), apiKey) == 1

		var tokenOK bool
		if mode != config.AdminAuthAPIKey && !(mode == config.AdminAuthEither && keyOK) {
			tokenOK = verifyBearer(c, secret)
		}

		var allowed bool
		switch mode {
		case config.AdminAuthAPIKey:
			allowed = keyOK
		case config.AdminAuthJWT:
			allowed = tokenOK
		case config.AdminAuthBoth:
			allowed = keyOK && tokenOK
		default:
			allowed = keyOK || tokenOK
		}
		if !allowed {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Message: "No autorizado. Se requiere clave de API válida.",
			})
		}
		return c.Next()
	}
}

// verifyBearer parses an HS256 bearer token and, when valid, stores it under
// UserKey so downstream handlers can read the admin claims.
func verifyBearer(c *fiber.Ctx, secret []byte) bool {
	if _, ok := Claims(c); ok {
		return true
	}

	auth := c.Get(fiber.HeaderAuthorization)
	raw, found := strings.CutPrefix(auth, "Bearer ")
	if !found || raw == "" {
		return false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	if role, _ := claims["role"].(string); role == "" {
		return false
	}

	c.Locals(UserKey, token)
	return true
}
