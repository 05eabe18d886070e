package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - http.go: HTTP server configuration
//   - backend.go: Upstream employee backend configuration
//   - storage.go: Session store and query cache configuration
//   - redis.go: Redis connection configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template hot reloading,
	// insecure cookies). Set DEV=true or NODE_ENV=development.
	IsDev bool `env:"DEV" envDefault:"false"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Backend is the upstream employee-management API.
	Backend BackendConfig `envPrefix:"BACKEND_"`

	// Session store configuration
	Session SessionConfig `envPrefix:"SESSION_"`

	// Cache is the read-path query cache configuration.
	Cache CacheConfig `envPrefix:"CACHE_"`

	// Redis connection, used when the session store or cache backend is
	// set to redis.
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Backend.Sanitize()
	c.Session.Sanitize()
	c.Cache.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// NeedsRedis reports whether any configured backend requires a Redis
// connection at startup.
func (c *AppConfig) NeedsRedis() bool {
	return c.Session.Store == StorageRedis || c.Cache.Backend == StorageRedis
}
