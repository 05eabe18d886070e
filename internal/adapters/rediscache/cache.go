// Package rediscache provides a Redis-backed query cache shared across
// gateway instances.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/staffdesk/ui-gateway/internal/ports"
)

// Cache implements the query cache on a Redis client.
type Cache struct {
	client redis.UniversalClient
	prefix string
}

// New creates a new Redis-backed cache with the given key prefix.
func New(client redis.UniversalClient, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

// Get retrieves a value by key. A missing key yields (nil, nil).
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	result, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	return []byte(result), nil
}

// Set stores a value with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Invalidate removes a key. Removing an absent key is not an error.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	return c.client.Del(ctx, c.prefix+key).Err()
}

// Health checks the health of the Redis connection.
func (c *Cache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

var _ ports.Cache = (*Cache)(nil)
