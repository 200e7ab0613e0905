package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/soulai-app/soulai/internal/config"
	"github.com/soulai-app/soulai/internal/snapshot"
)

// RedisCache wraps a Redis client and implements snapshot.Store, so Redis
// can serve as the snapshot backend instead of the SQL table.
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes a Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// Load returns the snapshot record stored under key.
func (c *RedisCache) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save rewrites the snapshot record under key. Records never expire; the
// snapshot is the system of record here, not a cache entry.
func (c *RedisCache) Save(ctx context.Context, key string, data []byte) error {
	return c.Client.Set(ctx, key, data, 0).Err()
}
