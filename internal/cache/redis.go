package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/servicehub/config"
	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client       *redis.Client
	providersTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, providersTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		providersTTL: providersTTL,
	}
}

// GetProviders returns nil, nil on a cache miss.
func (c *RedisCache) GetProviders(ctx context.Context) ([]domain.Provider, error) {
	data, err := c.client.Get(ctx, providersKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var providers []domain.Provider
	if err := json.Unmarshal(data, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (c *RedisCache) SetProviders(ctx context.Context, providers []domain.Provider) error {
	payload, err := json.Marshal(providers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, providersKey(), payload, c.providersTTL).Err()
}

func (c *RedisCache) InvalidateProviders(ctx context.Context) error {
	return c.client.Del(ctx, providersKey()).Err()
}

func (c *RedisCache) AcquireSlotLock(ctx context.Context, providerID, slot string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, slotLockKey(providerID, slot), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSlotLock(ctx context.Context, providerID, slot string) error {
	return c.client.Del(ctx, slotLockKey(providerID, slot)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func providersKey() string {
	return "cache:providers"
}

func slotLockKey(providerID, slot string) string {
	return "lock:provider:" + providerID + ":slot:" + slot
}
