// Package config loads runtime configuration from the environment, with an
// optional .env file for local runs.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime knob of the service.
type Config struct {
	Port string
	Env  string

	// SQLite is the default store; a non-empty DatabaseURL switches the
	// service to Postgres.
	DBPath      string
	DatabaseURL string

	ShopSeedPath string
	ItemSeedPath string

	// Optional read-through cache for the active-shop list.
	RedisAddr    string
	ShopCacheTTL time.Duration

	ORSAPIKey       string
	ProviderTimeout time.Duration

	DefaultMaxDetourKm float64
	PlatformFee        float64
	GatewayFee         float64
}

// Load reads configuration from environment variables, applying defaults
// suitable for local development.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_PATH", "data/app.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SHOP_SEED_PATH", "data/seeds/shops.json")
	v.SetDefault("ITEM_SEED_PATH", "data/seeds/items.json")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("SHOP_CACHE_TTL", "5m")
	v.SetDefault("PROVIDER_TIMEOUT", "5s")
	v.SetDefault("DEFAULT_MAX_DETOUR_KM", 5.0)
	v.SetDefault("PLATFORM_FEE", 10.0)
	v.SetDefault("GATEWAY_FEE", 5.0)

	cfg := &Config{
		Port:               v.GetString("PORT"),
		Env:                v.GetString("APP_ENV"),
		DBPath:             v.GetString("DB_PATH"),
		DatabaseURL:        strings.TrimSpace(v.GetString("DATABASE_URL")),
		ShopSeedPath:       v.GetString("SHOP_SEED_PATH"),
		ItemSeedPath:       v.GetString("ITEM_SEED_PATH"),
		RedisAddr:          strings.TrimSpace(v.GetString("REDIS_ADDR")),
		ShopCacheTTL:       v.GetDuration("SHOP_CACHE_TTL"),
		ORSAPIKey:          strings.TrimSpace(v.GetString("ORS_API_KEY")),
		ProviderTimeout:    v.GetDuration("PROVIDER_TIMEOUT"),
		DefaultMaxDetourKm: v.GetFloat64("DEFAULT_MAX_DETOUR_KM"),
		PlatformFee:        v.GetFloat64("PLATFORM_FEE"),
		GatewayFee:         v.GetFloat64("GATEWAY_FEE"),
	}

	if cfg.ShopCacheTTL <= 0 {
		return nil, fmt.Errorf("config: SHOP_CACHE_TTL must be positive, got %s", cfg.ShopCacheTTL)
	}
	if cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("config: PROVIDER_TIMEOUT must be positive, got %s", cfg.ProviderTimeout)
	}
	if cfg.DefaultMaxDetourKm < 0 {
		return nil, fmt.Errorf("config: DEFAULT_MAX_DETOUR_KM must be non-negative, got %v", cfg.DefaultMaxDetourKm)
	}

	return cfg, nil
}
