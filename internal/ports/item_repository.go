package ports

import (
	"context"

	"route-shop-service/internal/domain"
)

// Port: boundary for reading item-catalog entries from the document store.
type ItemRepository interface {
	// Resolve catalog items by id. Missing ids are absent from the result.
	GetItemsByIDs(ctx context.Context, ids []string) (map[string]domain.CatalogItem, error)
}
