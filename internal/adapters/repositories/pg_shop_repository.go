package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-shop-service/internal/domain"
)

// Postgres-backed implementation of the ShopRepository port.
type PgShopRepository struct{ DB *sql.DB }

func NewPgShopRepository(db *sql.DB) *PgShopRepository {
	return &PgShopRepository{DB: db}
}

const pgShopColumns = `
	s.shop_id, s.name, s.store_type, s.lat, s.lng, s.address, s.active, c.category
`

func (r *PgShopRepository) ListActiveShops(ctx context.Context) ([]domain.ShopRecord, error) {
	if r.DB == nil {
		return nil, errors.New("pg shop repository: DB is nil")
	}

	q := `
	SELECT ` + pgShopColumns + `
	FROM shops s
	LEFT JOIN shop_categories c ON c.shop_id = s.shop_id
	WHERE s.active
	ORDER BY s.shop_id;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list active shops: query shops: %w", err)
	}
	defer rows.Close()

	shops, err := foldPgShopRows(rows)
	if err != nil {
		return nil, fmt.Errorf("list active shops: %w", err)
	}
	return shops, nil
}

func (r *PgShopRepository) GetShopsByIDs(ctx context.Context, ids []string) (map[string]domain.ShopRecord, error) {
	if r.DB == nil {
		return nil, errors.New("pg shop repository: DB is nil")
	}

	uniq := uniqueStrings(ids)
	if len(uniq) == 0 {
		return map[string]domain.ShopRecord{}, nil
	}

	q := `
	SELECT ` + pgShopColumns + `
	FROM shops s
	LEFT JOIN shop_categories c ON c.shop_id = s.shop_id
	WHERE s.shop_id = ANY($1::text[])
	ORDER BY s.shop_id;
	`

	rows, err := r.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get shops by ids: query shops: %w", err)
	}
	defer rows.Close()

	shops, err := foldPgShopRows(rows)
	if err != nil {
		return nil, fmt.Errorf("get shops by ids: %w", err)
	}

	out := make(map[string]domain.ShopRecord, len(shops))
	for _, s := range shops {
		out[s.ID] = s
	}
	return out, nil
}

func (r *PgShopRepository) ListShopsByCategories(ctx context.Context, categories []string) ([]domain.ShopRecord, error) {
	if r.DB == nil {
		return nil, errors.New("pg shop repository: DB is nil")
	}

	uniq := uniqueStrings(categories)
	if len(uniq) == 0 {
		return []domain.ShopRecord{}, nil
	}

	q := `
	SELECT ` + pgShopColumns + `
	FROM shops s
	LEFT JOIN shop_categories c ON c.shop_id = s.shop_id
	WHERE s.active
		AND s.shop_id IN (
			SELECT shop_id FROM shop_categories WHERE category = ANY($1::text[])
		)
	ORDER BY s.shop_id;
	`

	rows, err := r.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("list shops by categories: query shops: %w", err)
	}
	defer rows.Close()

	shops, err := foldPgShopRows(rows)
	if err != nil {
		return nil, fmt.Errorf("list shops by categories: %w", err)
	}
	return shops, nil
}

// Same join fold as the SQLite variant, with a native bool for active.
func foldPgShopRows(rows *sql.Rows) ([]domain.ShopRecord, error) {
	shops := make([]domain.ShopRecord, 0, 32)
	var current *domain.ShopRecord

	for rows.Next() {
		var (
			id, name, storeType, address string
			lat, lng                     float64
			active                       bool
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
				Active:     active,
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

func uniqueStrings(values []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(values))
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
	}
	return uniq
}
