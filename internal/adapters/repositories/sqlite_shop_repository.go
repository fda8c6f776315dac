package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-shop-service/internal/domain"
)

// SQLite-backed implementation of the ShopRepository port.
type SqliteShopRepository struct{ DB *sql.DB }

func NewSqliteShopRepository(db *sql.DB) *SqliteShopRepository {
	return &SqliteShopRepository{DB: db}
}

const sqliteShopColumns = `
	s.shop_id, s.name, s.store_type, s.lat, s.lng, s.address, s.active, c.category
`

// Return every shop currently active on the platform.
func (r *SqliteShopRepository) ListActiveShops(ctx context.Context) ([]domain.ShopRecord, error) {
	if r.DB == nil {
		return nil, errors.New("sqlite shop repository: DB is nil")
	}

	q := `
	SELECT ` + sqliteShopColumns + `
	FROM shops s
	LEFT JOIN shop_categories c ON c.shop_id = s.shop_id
	WHERE s.active = 1
	ORDER BY s.shop_id;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list active shops: query shops: %w", err)
	}
	defer rows.Close()

	shops, err := foldShopRows(rows)
	if err != nil {
		return nil, fmt.Errorf("list active shops: %w", err)
	}
	return shops, nil
}

// Resolve shops by id; missing ids are absent from the result.
func (r *SqliteShopRepository) GetShopsByIDs(ctx context.Context, ids []string) (map[string]domain.ShopRecord, error) {
	if r.DB == nil {
		return nil, errors.New("sqlite shop repository: DB is nil")
	}

	uniq, placeholders := uniqueWithPlaceholders(ids)
	if len(uniq) == 0 {
		return map[string]domain.ShopRecord{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, id := range uniq {
		args = append(args, id)
	}

	// SQLite cannot bind a slice into IN (...); only the placeholder
	// structure is interpolated, all values stay parameterized.
	q := fmt.Sprintf(`
	SELECT `+sqliteShopColumns+`
	FROM shops s
	LEFT JOIN shop_categories c ON c.shop_id = s.shop_id
	WHERE s.shop_id IN (%s)
	ORDER BY s.shop_id;
	`, placeholders)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get shops by ids: query shops: %w", err)
	}
	defer rows.Close()

	shops, err := foldShopRows(rows)
	if err != nil {
		return nil, fmt.Errorf("get shops by ids: %w", err)
	}

	out := make(map[string]domain.ShopRecord, len(shops))
	for _, s := range shops {
		out[s.ID] = s
	}
	return out, nil
}

// Return active shops declaring at least one of the given categories.
func (r *SqliteShopRepository) ListShopsByCategories(ctx context.Context, categories []string) ([]domain.ShopRecord, error) {
	if r.DB == nil {
		return nil, errors.New("sqlite shop repository: DB is nil")
	}

	uniq, placeholders := uniqueWithPlaceholders(categories)
	if len(uniq) == 0 {
		return []domain.ShopRecord{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, c := range uniq {
		args = append(args, c)
	}

	q := fmt.Sprintf(`
	SELECT `+sqliteShopColumns+`
	FROM shops s
	LEFT JOIN shop_categories c ON c.shop_id = s.shop_id
	WHERE s.active = 1
		AND s.shop_id IN (SELECT shop_id FROM shop_categories WHERE category IN (%s))
	ORDER BY s.shop_id;
	`, placeholders)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list shops by categories: query shops: %w", err)
	}
	defer rows.Close()

	shops, err := foldShopRows(rows)
	if err != nil {
		return nil, fmt.Errorf("list shops by categories: %w", err)
	}
	return shops, nil
}

// foldShopRows collapses the shop x category join into one record per shop.
// Rows must arrive ordered by shop id.
func foldShopRows(rows *sql.Rows) ([]domain.ShopRecord, error) {
	shops := make([]domain.ShopRecord, 0, 32)
	var current *domain.ShopRecord

	for rows.Next() {
		var (
			id, name, storeType, address string
			lat, lng                     float64
			active                       int
			category                     sql.NullString
		)
		if err := rows.Scan(&id, &name, &storeType, &lat, &lng, &address, &active, &category); err != nil {
			return nil, fmt.Errorf("scan shop row: %w", err)
		}

		if current == nil || current.ID != id {
			shops = append(shops, domain.ShopRecord{
				ID:         id,
				Name:       name,
				Type:       domain.StoreType(storeType),
				Coordinate: domain.Coordinate{Lat: lat, Lng: lng},
				Address:    address,
				Active:     active != 0,
			})
			current = &shops[len(shops)-1]
		}
		if category.Valid {
			current.Categories = append(current.Categories, category.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("shop row iteration: %w", err)
	}

	return shops, nil
}

func uniqueWithPlaceholders(values []string) (uniq []string, placeholders string) {
	seen := map[string]struct{}{}
	ph := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		uniq = append(uniq, v)
		ph = append(ph, "?")
	}
	return uniq, strings.Join(ph, ",")
}
