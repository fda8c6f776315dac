package cache

import (
	"context"

	"go.uber.org/zap"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

// CachedShopRepository decorates a ShopRepository with a read-through cache
// on the active-shop list. Cache failures degrade to the inner repository,
// never to an error.
type CachedShopRepository struct {
	Inner  ports.ShopRepository
	Cache  ports.ShopCache
	Logger *zap.Logger
}

func NewCachedShopRepository(inner ports.ShopRepository, cache ports.ShopCache, logger *zap.Logger) *CachedShopRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedShopRepository{Inner: inner, Cache: cache, Logger: logger}
}

func (r *CachedShopRepository) ListActiveShops(ctx context.Context) ([]domain.ShopRecord, error) {
	if r.Cache != nil {
		shops, ok, err := r.Cache.GetActiveShops(ctx)
		if err != nil {
			r.Logger.Warn("shop cache read failed", zap.Error(err))
		} else if ok {
			return shops, nil
		}
	}

	shops, err := r.Inner.ListActiveShops(ctx)
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		if err := r.Cache.PutActiveShops(ctx, shops); err != nil {
			r.Logger.Warn("shop cache write failed", zap.Error(err))
		}
	}

	return shops, nil
}

func (r *CachedShopRepository) GetShopsByIDs(ctx context.Context, ids []string) (map[string]domain.ShopRecord, error) {
	return r.Inner.GetShopsByIDs(ctx, ids)
}

func (r *CachedShopRepository) ListShopsByCategories(ctx context.Context, categories []string) ([]domain.ShopRecord, error) {
	return r.Inner.ListShopsByCategories(ctx, categories)
}
