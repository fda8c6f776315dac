package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createShopsQuery := `
	CREATE TABLE IF NOT EXISTS shops (
		shop_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		store_type TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1
	);
	`

	createShopCategoriesQuery := `
	CREATE TABLE IF NOT EXISTS shop_categories (
		shop_id TEXT NOT NULL,
		category TEXT NOT NULL,
		PRIMARY KEY (shop_id, category)
	);
	`

	createItemsQuery := `
	CREATE TABLE IF NOT EXISTS items (
		item_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		quote_deadline TEXT NOT NULL,
		status TEXT NOT NULL,
		grand_total REAL NOT NULL,
		platform_fee REAL NOT NULL,
		gateway_fee REAL NOT NULL,
		trip_start TEXT NOT NULL DEFAULT '',
		trip_destination TEXT NOT NULL DEFAULT '',
		vendor_ids TEXT NOT NULL,
		portions TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shop_categories_category
	ON shop_categories(category);
	`

	statements := []string{
		createShopsQuery,
		createShopCategoriesQuery,
		createItemsQuery,
		createOrdersQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ShopSeed struct {
	ShopID     string   `json:"shop_id"`
	Name       string   `json:"name"`
	StoreType  string   `json:"store_type"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Address    string   `json:"address"`
	Active     bool     `json:"active"`
	Categories []string `json:"categories"`
}

type ItemSeed struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// SeedFromJSON loads shops and items from JSON seed files for local runs.
// Existing rows are replaced so reseeding is repeatable.
func SeedFromJSON(db *sql.DB, shopsPath, itemsPath string) error {
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
		active := 0
		if s.Active {
			active = 1
		}
		if _, err := tx.Exec(`
		INSERT OR REPLACE INTO shops (shop_id, name, store_type, lat, lng, address, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		`, s.ShopID, s.Name, s.StoreType, s.Lat, s.Lng, s.Address, active); err != nil {
			return fmt.Errorf("seed: insert shop %q: %w", s.ShopID, err)
		}

		if _, err := tx.Exec(`DELETE FROM shop_categories WHERE shop_id = ?`, s.ShopID); err != nil {
			return fmt.Errorf("seed: clear categories for shop %q: %w", s.ShopID, err)
		}
		for _, c := range s.Categories {
			if _, err := tx.Exec(`
			INSERT OR REPLACE INTO shop_categories (shop_id, category) VALUES (?, ?)
			`, s.ShopID, c); err != nil {
				return fmt.Errorf("seed: insert category %q for shop %q: %w", c, s.ShopID, err)
			}
		}
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		INSERT OR REPLACE INTO items (item_id, name, category, price)
		VALUES (?, ?, ?, ?)
		`, it.ItemID, it.Name, it.Category, it.Price); err != nil {
			return fmt.Errorf("seed: insert item %q: %w", it.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func readSeedFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file %q: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse seed file %q: %w", path, err)
	}
	return nil
}
