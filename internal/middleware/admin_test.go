package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/granitoskate/backoffice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "7",
		"email": "ana@granito.test",
		"name":  "Ana",
		"role":  "admin",
		"exp":   exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newAdminApp(mode string) *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret, AdminAPIKey: "static-key", AdminAuthMode: mode}
	app := fiber.New()
	app.Get("/admin", AdminRequired(cfg), func(c *fiber.Ctx) error {
		id, _ := AdminID(c)
		return c.JSON(fiber.Map{"admin_id": id})
	})
	return app
}

func TestAdminRequiredModes(t *testing.T) {
	valid := signedToken(t, testSecret, time.Now().Add(time.Hour))
	expired := signedToken(t, testSecret, time.Now().Add(-time.Hour))
	forged := signedToken(t, "other-secret", time.Now().Add(time.Hour))

	type creds struct{ key, bearer string }
	cases := []struct {
		mode  string
		creds creds
		want  int
	}{
		{config.AdminAuthAPIKey, creds{key: "static-key"}, fiber.StatusOK},
		{config.AdminAuthAPIKey, creds{bearer: valid}, fiber.StatusUnauthorized},
		{config.AdminAuthJWT, creds{bearer: valid}, fiber.StatusOK},
		{config.AdminAuthJWT, creds{key: "static-key"}, fiber.StatusUnauthorized},
		{config.AdminAuthJWT, creds{bearer: expired}, fiber.StatusUnauthorized},
		{config.AdminAuthJWT, creds{bearer: forged}, fiber.StatusUnauthorized},
		{config.AdminAuthEither, creds{key: "static-key"}, fiber.StatusOK},
		{config.AdminAuthEither, creds{bearer: valid}, fiber.StatusOK},
		{config.AdminAuthEither, creds{key: "wrong"}, fiber.StatusUnauthorized},
		{config.AdminAuthEither, creds{}, fiber.StatusUnauthorized},
		{config.AdminAuthBoth, creds{key: "static-key", bearer: valid}, fiber.StatusOK},
		{config.AdminAuthBoth, creds{key: "static-key"}, fiber.StatusUnauthorized},
		{config.AdminAuthBoth, creds{bearer: valid}, fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		app := newAdminApp(tc.mode)
		req := httptest.NewRequest("GET", "/admin", nil)
		if tc.creds.key != "" {
			req.Header.Set(APIKeyHeader, tc.creds.key)
		}
		if tc.creds.bearer != "" {
			req.Header.Set("Authorization", "Bearer "+tc.creds.bearer)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, "mode=%s key=%q bearer=%v", tc.mode, tc.creds.key, tc.creds.bearer != "")
	}
}

func TestJWTProtectedRejectsMissingToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()
	app.Get("/me", JWTProtected(cfg), func(c *fiber.Ctx) error {
		id, ok := AdminID(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.JSON(fiber.Map{"id": id})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, time.Now().Add(time.Hour)))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
