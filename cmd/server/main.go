package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"route-shop-service/internal/adapters/cache"
	"route-shop-service/internal/adapters/repositories"
	"route-shop-service/internal/adapters/routing"
	"route-shop-service/internal/api"
	"route-shop-service/internal/config"
	"route-shop-service/internal/platform/db"
	"route-shop-service/internal/platform/obs"
	"route-shop-service/internal/ports"
	"route-shop-service/internal/services"
)

// main is the application composition root. It wires concrete adapters
// (SQLite or Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.ORSAPIKey == "" {
		logger.Fatal("ORS_API_KEY is required")
	}

	conn, shops, items, orders, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("store setup failed", zap.Error(err))
	}
	defer conn.Close()

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		shopCache := cache.NewRedisShopCache(client, cfg.ShopCacheTTL)
		shops = cache.NewCachedShopRepository(shops, shopCache, logger)
		logger.Info("shop cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.ShopCacheTTL))
	}

	provider, err := routing.NewORSRouteProvider(cfg.ORSAPIKey)
	if err != nil {
		logger.Fatal("route provider setup failed", zap.Error(err))
	}

	discovery := &services.Discovery{
		Shops:    shops,
		Provider: provider,
		Timeout:  cfg.ProviderTimeout,
		Logger:   logger,
	}
	aggregator := &services.Aggregator{
		Orders: orders,
		Logger: logger,
	}

	router := api.NewRouter(api.Deps{
		Discovery:          discovery,
		Shops:              shops,
		Items:              items,
		Orders:             orders,
		Aggregator:         aggregator,
		Fees:               services.FeeSchedule{PlatformFee: cfg.PlatformFee, GatewayFee: cfg.GatewayFee},
		DefaultMaxDetourKm: cfg.DefaultMaxDetourKm,
		Logger:             logger,
	})

	// Timeouts are tuned for cold-cache trip planning (external API latency).
	logger.Info("server listening", zap.String("addr", ":"+cfg.Port))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

// openStore picks Postgres when DATABASE_URL is set, SQLite otherwise.
// The SQLite path initializes schema and seed data for local runs.
func openStore(cfg *config.Config, logger *zap.Logger) (
	*sql.DB,
	ports.ShopRepository,
	ports.ItemRepository,
	ports.OrderRepository,
	error,
) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("open store: %w", err)
		}
		logger.Info("using postgres store")
		return conn,
			repositories.NewPgShopRepository(conn),
			repositories.NewPgItemRepository(conn),
			repositories.NewPgOrderRepository(conn),
			nil
	}

	conn, err := openSqlite(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	if err := repositories.SeedFromJSON(conn, cfg.ShopSeedPath, cfg.ItemSeedPath); err != nil {
		conn.Close()
		return nil, nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	logger.Info("using sqlite store", zap.String("path", cfg.DBPath))
	return conn,
		repositories.NewSqliteShopRepository(conn),
		repositories.NewSqliteItemRepository(conn),
		repositories.NewSqliteOrderRepository(conn),
		nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}

	return conn, nil
}
