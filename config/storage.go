package config

import (
	"fmt"
	"strings"
	"time"
)

// StorageBackend selects the implementation behind the session store and the
// query cache.
type StorageBackend string

const (
	// StorageMemory keeps records in process memory. Suitable for a single
	// instance; records are lost on restart.
	StorageMemory StorageBackend = "memory"
	// StorageRedis keeps records in Redis, shared across instances.
	StorageRedis StorageBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (s *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "redis":
		*s = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: memory, redis)", v)
	}
}

// SessionConfig contains session store configuration.
type SessionConfig struct {
	// Store selects the session record backend.
	Store StorageBackend `env:"STORE" envDefault:"memory"`

	// TTL is the session lifetime from login.
	TTL time.Duration `env:"TTL" envDefault:"12h"`

	// KeyPrefix namespaces session keys in shared stores.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"session:"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
}

// CacheConfig contains query cache configuration.
type CacheConfig struct {
	// Backend selects the cache implementation.
	Backend StorageBackend `env:"BACKEND" envDefault:"memory"`

	// TTL is how long cached query results stay fresh. Mutations
	// invalidate affected keys immediately regardless of TTL.
	TTL time.Duration `env:"TTL" envDefault:"60s"`

	// KeyPrefix namespaces cache keys in shared stores.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"query:"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.TTL <= 0 {
		c.TTL = 60 * time.Second
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "query:"
	}
}
