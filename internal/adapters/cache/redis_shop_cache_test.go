package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

func testCache(t *testing.T, ttl time.Duration) (*RedisShopCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisShopCache(client, ttl), mr
}

func sampleShops() []domain.ShopRecord {
	return []domain.ShopRecord{
		{
			ID: "grocer", Name: "Nandini Fresh Mart", Type: domain.StoreGrocery,
			Coordinate: domain.Coordinate{Lat: 12.925, Lng: 77.625},
			Active:     true, Categories: []string{"grocery", "dairy"},
		},
		{
			ID: "pharmacy", Name: "Apollo Pharmacy", Type: domain.StorePharmacy,
			Coordinate: domain.Coordinate{Lat: 12.9377, Lng: 77.6374},
			Active:     true, Categories: []string{"medicine"},
		},
	}
}

func TestRedisShopCacheRoundTrip(t *testing.T) {
	c, _ := testCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.GetActiveShops(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.PutActiveShops(ctx, sampleShops()))

	got, ok, err := c.GetActiveShops(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sampleShops(), got)
}

func TestRedisShopCacheExpiry(t *testing.T) {
	c, mr := testCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.PutActiveShops(ctx, sampleShops()))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.GetActiveShops(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisShopCacheInvalidate(t *testing.T) {
	c, _ := testCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.PutActiveShops(ctx, sampleShops()))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.GetActiveShops(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

type scriptedShopRepo struct {
	shops []domain.ShopRecord
	calls int
}

func (s *scriptedShopRepo) ListActiveShops(context.Context) ([]domain.ShopRecord, error) {
	s.calls++
	return s.shops, nil
}

func (s *scriptedShopRepo) GetShopsByIDs(context.Context, []string) (map[string]domain.ShopRecord, error) {
	return nil, nil
}

func (s *scriptedShopRepo) ListShopsByCategories(context.Context, []string) ([]domain.ShopRecord, error) {
	return nil, nil
}

type failingShopCache struct{}

func (failingShopCache) GetActiveShops(context.Context) ([]domain.ShopRecord, bool, error) {
	return nil, false, errors.New("redis down")
}
func (failingShopCache) PutActiveShops(context.Context, []domain.ShopRecord) error {
	return errors.New("redis down")
}
func (failingShopCache) Invalidate(context.Context) error { return errors.New("redis down") }

var _ ports.ShopCache = failingShopCache{}

func TestCachedShopRepositoryReadThrough(t *testing.T) {
	c, _ := testCache(t, time.Minute)
	inner := &scriptedShopRepo{shops: sampleShops()}
	repo := NewCachedShopRepository(inner, c, zap.NewNop())
	ctx := context.Background()

	first, err := repo.ListActiveShops(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleShops(), first)
	require.Equal(t, 1, inner.calls)

	// Second read is served from the cache.
	second, err := repo.ListActiveShops(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, inner.calls)
}

func TestCachedShopRepositoryDegradesOnCacheFailure(t *testing.T) {
	inner := &scriptedShopRepo{shops: sampleShops()}
	repo := NewCachedShopRepository(inner, failingShopCache{}, zap.NewNop())

	got, err := repo.ListActiveShops(context.Background())
	require.NoError(t, err)
	require.Equal(t, sampleShops(), got)
	require.Equal(t, 1, inner.calls)
}
