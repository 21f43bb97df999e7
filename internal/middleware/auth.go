package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/granitoskate/backoffice/internal/config"
	"github.com/granitoskate/backoffice/internal/dto"
)

// UserKey is the Locals key holding the verified *jwt.Token.
const UserKey = "user"

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ContextKey: UserKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Message: "Token inválido o expirado",
			})
		},
	})
}

// Claims returns the claims of the token verified earlier in the chain.
func Claims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals(UserKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// AdminID extracts the admin id stored in the sub claim.
func AdminID(c *fiber.Ctx) (uint, bool) {
	claims, ok := Claims(c)
	if !ok {
		return 0, false
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
