package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-shop-service/internal/domain"
)

const activeShopsKey = "shops:active"

// RedisShopCache keeps the active-shop list in Redis so discovery does not
// hit the database on every request. Entries expire after TTL.
type RedisShopCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisShopCache(client *redis.Client, ttl time.Duration) *RedisShopCache {
	return &RedisShopCache{Client: client, TTL: ttl}
}

// GetActiveShops returns the cached list, reporting false on a miss.
func (c *RedisShopCache) GetActiveShops(ctx context.Context) ([]domain.ShopRecord, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("shop cache: client is nil")
	}

	data, err := c.Client.Get(ctx, activeShopsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("shop cache: get %q: %w", activeShopsKey, err)
	}

	var shops []domain.ShopRecord
	if err := json.Unmarshal(data, &shops); err != nil {
		return nil, false, fmt.Errorf("shop cache: decode %q: %w", activeShopsKey, err)
	}

	return shops, true, nil
}

func (c *RedisShopCache) PutActiveShops(ctx context.Context, shops []domain.ShopRecord) error {
	if c.Client == nil {
		return errors.New("shop cache: client is nil")
	}

	data, err := json.Marshal(shops)
	if err != nil {
		return fmt.Errorf("shop cache: encode %q: %w", activeShopsKey, err)
	}

	if err := c.Client.Set(ctx, activeShopsKey, data, c.TTL).Err(); err != nil {
		return fmt.Errorf("shop cache: set %q: %w", activeShopsKey, err)
	}

	return nil
}

// Invalidate drops the cached list; the next read repopulates it.
func (c *RedisShopCache) Invalidate(ctx context.Context) error {
	if c.Client == nil {
		return errors.New("shop cache: client is nil")
	}

	if err := c.Client.Del(ctx, activeShopsKey).Err(); err != nil {
		return fmt.Errorf("shop cache: del %q: %w", activeShopsKey, err)
	}

	return nil
}
