package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_DATABASE_URL", "postgres://app")
	t.Setenv("TEMA_DATABASE_URL", "postgres://tema")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, AdminAuthEither, cfg.AdminAuthMode)
	assert.Equal(t, "2023-10", cfg.ShopifyAPIVersion)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.False(t, cfg.Development())
	assert.False(t, cfg.ShopifyConfigured())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("ADMIN_AUTH_MODE", "JWT")
	t.Setenv("API_URL", "https://api.granito.test/")
	t.Setenv("SHOPIFY_SHOP_NAME", "granito")
	t.Setenv("SHOPIFY_API_PASSWORD", "shpat_x")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.Development())
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, AdminAuthJWT, cfg.AdminAuthMode)
	assert.Equal(t, "https://api.granito.test", cfg.PublicURL)
	assert.True(t, cfg.ShopifyConfigured())
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("APP_DATABASE_URL", "")
	t.Setenv("TEMA_DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadAdminModeNeedsKey(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_AUTH_MODE", "both")
	t.Setenv("ADMIN_API_KEY", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("ADMIN_AUTH_MODE", "sometimes")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "APP_DATABASE_URL=postgres://file-app\nTEMA_DATABASE_URL=postgres://file-tema\nJWT_SECRET=from-file\nPORT=4000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Chdir(dir)
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://file-app", cfg.AppDatabaseURL)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	// the process environment wins over the file
	assert.Equal(t, "5000", cfg.Port)
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	setRequired(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.env")
}
