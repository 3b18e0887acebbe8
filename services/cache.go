package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// errCacheMiss is returned by a ResultCache when a key is absent or expired.
var errCacheMiss = errors.New("cache miss")

// ResultCache is the transient store for result details. Entries may vanish
// at any time after their TTL or on eviction.
type ResultCache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) ResultCache {
	return &redisCache{client: client}
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errCacheMiss
		}
		return nil, err
	}
	return []byte(data), nil
}
