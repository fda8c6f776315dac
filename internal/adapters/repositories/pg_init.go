package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema. Mirrors the SQLite layout with native
// types; run via the dbtool against a fresh database.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS shops (
			shop_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			store_type TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS shop_categories (
			shop_id TEXT NOT NULL,
			category TEXT NOT NULL,
			PRIMARY KEY (shop_id, category)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS items (
			item_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			quote_deadline TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL,
			grand_total DOUBLE PRECISION NOT NULL,
			platform_fee DOUBLE PRECISION NOT NULL,
			gateway_fee DOUBLE PRECISION NOT NULL,
			trip_start TEXT NOT NULL DEFAULT '',
			trip_destination TEXT NOT NULL DEFAULT '',
			vendor_ids JSONB NOT NULL,
			portions JSONB NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_shop_categories_category
		ON shop_categories(category);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// SeedPostgresFromJSON loads the same JSON seed files the SQLite path uses,
// upserting so reseeding is repeatable.
func SeedPostgresFromJSON(db *sql.DB, shopsPath, itemsPath string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	var shops []ShopSeed
	if err := readSeedFile(shopsPath, &shops); err != nil {
		return fmt.Errorf("seed shops: %w", err)
	}

	var items []ItemSeed
	if err := readSeedFile(itemsPath, &items); err != nil {
		return fmt.Errorf("seed items: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range shops {
		if _, err := tx.Exec(`
		INSERT INTO shops (shop_id, name, store_type, lat, lng, address, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (shop_id) DO UPDATE
		SET name = EXCLUDED.name,
			store_type = EXCLUDED.store_type,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			address = EXCLUDED.address,
			active = EXCLUDED.active;
		`, s.ShopID, s.Name, s.StoreType, s.Lat, s.Lng, s.Address, s.Active); err != nil {
			return fmt.Errorf("seed: insert shop %q: %w", s.ShopID, err)
		}

		if _, err := tx.Exec(`DELETE FROM shop_categories WHERE shop_id = $1`, s.ShopID); err != nil {
			return fmt.Errorf("seed: clear categories for shop %q: %w", s.ShopID, err)
		}
		for _, c := range s.Categories {
			if _, err := tx.Exec(`
			INSERT INTO shop_categories (shop_id, category) VALUES ($1, $2)
			ON CONFLICT DO NOTHING;
			`, s.ShopID, c); err != nil {
				return fmt.Errorf("seed: insert category %q for shop %q: %w", c, s.ShopID, err)
			}
		}
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		INSERT INTO items (item_id, name, category, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id) DO UPDATE
		SET name = EXCLUDED.name,
			category = EXCLUDED.category,
			price = EXCLUDED.price;
		`, it.ItemID, it.Name, it.Category, it.Price); err != nil {
			return fmt.Errorf("seed: insert item %q: %w", it.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
