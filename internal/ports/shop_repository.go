package ports

import (
	"context"

	"route-shop-service/internal/domain"
)

// Port: boundary for reading ShopRecords from the document store. The vendor
// catalog is owned by vendor management; this service never writes to it.
type ShopRepository interface {
	// Return every shop currently active on the platform.
	ListActiveShops(ctx context.Context) ([]domain.ShopRecord, error)
	// Resolve shops by id. Missing ids are simply absent from the result.
	GetShopsByIDs(ctx context.Context, ids []string) (map[string]domain.ShopRecord, error)
	// Return active shops declaring at least one of the given categories.
	ListShopsByCategories(ctx context.Context, categories []string) ([]domain.ShopRecord, error)
}

// ShopCache is an explicit cache for the active-shop catalog with an
// injected TTL, so planning runs stay deterministic and testable.
type ShopCache interface {
	// Return the cached catalog; ok is false on a miss.
	GetActiveShops(ctx context.Context) (shops []domain.ShopRecord, ok bool, err error)
	PutActiveShops(ctx context.Context, shops []domain.ShopRecord) error
	Invalidate(ctx context.Context) error
}
