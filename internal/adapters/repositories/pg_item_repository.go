package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-shop-service/internal/domain"
)

// Postgres-backed implementation of the ItemRepository port.
type PgItemRepository struct{ DB *sql.DB }

func NewPgItemRepository(db *sql.DB) *PgItemRepository {
	return &PgItemRepository{DB: db}
}

func (r *PgItemRepository) GetItemsByIDs(ctx context.Context, ids []string) (map[string]domain.CatalogItem, error) {
	if r.DB == nil {
		return nil, errors.New("pg item repository: DB is nil")
	}

	uniq := uniqueStrings(ids)
	if len(uniq) == 0 {
		return map[string]domain.CatalogItem{}, nil
	}

	q := `
	SELECT item_id, name, category, price
	FROM items
	WHERE item_id = ANY($1::text[]);
	`

	rows, err := r.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get items by ids: query items: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.CatalogItem, len(uniq))
	for rows.Next() {
		var item domain.CatalogItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price); err != nil {
			return nil, fmt.Errorf("get items by ids: scan row: %w", err)
		}
		out[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get items by ids: row iteration: %w", err)
	}

	return out, nil
}
