package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Admin gate modes accepted by ADMIN_AUTH_MODE.
const (
	AdminAuthAPIKey = "api_key"
	AdminAuthJWT    = "jwt"
	AdminAuthEither = "either"
	AdminAuthBoth   = "both"
)

type Config struct {
	// Server
	Port      string
	AppEnv    string
	PublicURL string
	AdminDir  string

	// Databases
	AppDatabaseURL   string
	ThemeDatabaseURL string

	// Auth
	JWTSecret     string
	JWTExpiry     time.Duration
	AdminAPIKey   string
	AdminAuthMode string

	// Shopify
	ShopifyShopName      string
	ShopifyAPIKey        string
	ShopifyAPIPassword   string
	ShopifyAPIVersion    string
	ShopifyWebhookSecret string
	WebhookDedupeTable   string

	// HTTP
	CORSOrigins     string
	RateLimitMax    int
	RateLimitWindow time.Duration

	SentryDSN string
}

// Load reads configuration from the environment, optionally seeded by a
// .env file in the working directory. CONFIG_FILE names another file, which
// then must exist.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	file := v.GetString("CONFIG_FILE")
	explicit := file != ""
	if !explicit {
		file = ".env"
		v.SetConfigType("env")
	}
	v.SetConfigFile(file)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:      v.GetString("PORT"),
		AppEnv:    v.GetString("APP_ENV"),
		PublicURL: strings.TrimRight(v.GetString("API_URL"), "/"),
		AdminDir:  v.GetString("ADMIN_DIR"),

		AppDatabaseURL:   v.GetString("APP_DATABASE_URL"),
		ThemeDatabaseURL: v.GetString("TEMA_DATABASE_URL"),

		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTExpiry:     v.GetDuration("JWT_EXPIRY"),
		AdminAPIKey:   v.GetString("ADMIN_API_KEY"),
		AdminAuthMode: strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_AUTH_MODE"))),

		ShopifyShopName:      v.GetString("SHOPIFY_SHOP_NAME"),
		ShopifyAPIKey:        v.GetString("SHOPIFY_API_KEY"),
		ShopifyAPIPassword:   v.GetString("SHOPIFY_API_PASSWORD"),
		ShopifyAPIVersion:    v.GetString("SHOPIFY_API_VERSION"),
		ShopifyWebhookSecret: v.GetString("SHOPIFY_WEBHOOK_SECRET"),
		WebhookDedupeTable:   strings.TrimSpace(v.GetString("SHOPIFY_WEBHOOK_DEDUPE_TABLE")),

		CORSOrigins:     v.GetString("FRONTEND_URL"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),

		SentryDSN: v.GetString("SENTRY_DSN"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("CONFIG_FILE", "")
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("API_URL", "")
	v.SetDefault("ADMIN_DIR", "./admin")
	v.SetDefault("APP_DATABASE_URL", "")
	v.SetDefault("TEMA_DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY", "24h")
	v.SetDefault("ADMIN_API_KEY", "")
	v.SetDefault("ADMIN_AUTH_MODE", AdminAuthEither)
	v.SetDefault("SHOPIFY_SHOP_NAME", "")
	v.SetDefault("SHOPIFY_API_KEY", "")
	v.SetDefault("SHOPIFY_API_PASSWORD", "")
	v.SetDefault("SHOPIFY_API_VERSION", "2023-10")
	v.SetDefault("SHOPIFY_WEBHOOK_SECRET", "")
	v.SetDefault("SHOPIFY_WEBHOOK_DEDUPE_TABLE", "")
	v.SetDefault("FRONTEND_URL", "*")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("SENTRY_DSN", "")
}

func (c *Config) validate() error {
	var missing []string
	if c.AppDatabaseURL == "" {
		missing = append(missing, "APP_DATABASE_URL")
	}
	if c.ThemeDatabaseURL == "" {
		missing = append(missing, "TEMA_DATABASE_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch c.AdminAuthMode {
	case AdminAuthAPIKey, AdminAuthJWT, AdminAuthEither, AdminAuthBoth:
	default:
		return fmt.Errorf("invalid ADMIN_AUTH_MODE %q", c.AdminAuthMode)
	}
	if (c.AdminAuthMode == AdminAuthAPIKey || c.AdminAuthMode == AdminAuthBoth) && c.AdminAPIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY is required when ADMIN_AUTH_MODE=%s", c.AdminAuthMode)
	}
	if c.JWTExpiry <= 0 {
		c.JWTExpiry = 24 * time.Hour
	}
	if c.RateLimitMax <= 0 {
		c.RateLimitMax = 100
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = 15 * time.Minute
	}
	return nil
}

// Development reports whether raw error details may be echoed to clients.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

// ShopifyConfigured reports whether enough credentials exist to call the Admin API.
func (c *Config) ShopifyConfigured() bool {
	return c.ShopifyShopName != "" && c.ShopifyAPIPassword != ""
}
