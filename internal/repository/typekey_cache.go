package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// TypeKeyCache caches product-type id to key mappings in Redis. Type keys
// change rarely, so a cache hit saves a platform round trip on the hot path
// before acknowledgement.
type TypeKeyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTypeKeyCache(client *redis.Client, ttl time.Duration) *TypeKeyCache {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TypeKeyCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *TypeKeyCache) Close() error {
	return c.client.Close()
}

// Get returns the cached key for a product-type id, or "" on a miss.
func (c *TypeKeyCache) Get(ctx context.Context, typeID string) (string, error) {
	key, err := c.client.Get(ctx, cacheKey(typeID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return key, nil
}

// Set stores a product-type key with the cache TTL.
func (c *TypeKeyCache) Set(ctx context.Context, typeID, key string) error {
	return c.client.SetEX(ctx, cacheKey(typeID), key, c.ttl).Err()
}

func cacheKey(typeID string) string {
	return "producttype:key:" + typeID
}
