package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-shop-service/internal/domain"
)

// SQLite-backed implementation of the ItemRepository port.
type SqliteItemRepository struct{ DB *sql.DB }

func NewSqliteItemRepository(db *sql.DB) *SqliteItemRepository {
	return &SqliteItemRepository{DB: db}
}

// Resolve catalog items by id; missing ids are absent from the result.
func (r *SqliteItemRepository) GetItemsByIDs(ctx context.Context, ids []string) (map[string]domain.CatalogItem, error) {
	if r.DB == nil {
		return nil, errors.New("sqlite item repository: DB is nil")
	}

	uniq, placeholders := uniqueWithPlaceholders(ids)
	if len(uniq) == 0 {
		return map[string]domain.CatalogItem{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, id := range uniq {
		args = append(args, id)
	}

	q := fmt.Sprintf(`
	SELECT item_id, name, category, price
	FROM items
	WHERE item_id IN (%s);
	`, placeholders)

	rows, err := r.DB.QueryContext(ctx, q, args...)
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
