package ports

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL semantics used by the read path.
// A miss is signalled by a nil value and nil error, never by a sentinel.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate drops the key. Dropping an absent key is not an error.
	Invalidate(ctx context.Context, key string) error
}
