package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfigDefaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.local/")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "staffdesk_session", cfg.HTTP.CookieName)
	assert.Equal(t, "http://backend.local", cfg.Backend.BaseURL, "trailing slash trimmed")
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, StorageMemory, cfg.Session.Store)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "session:", cfg.Session.KeyPrefix)
	assert.Equal(t, StorageMemory, cfg.Cache.Backend)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.IsDev)
	assert.False(t, cfg.NeedsRedis())
}

func TestAppConfigRedisBackends(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.local")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, StorageRedis, cfg.Session.Store)
	assert.True(t, cfg.NeedsRedis())
	assert.Equal(t, "cache.internal:6380", cfg.Redis.Addr())
}

func TestStorageBackendUnmarshal(t *testing.T) {
	var s StorageBackend

	require.NoError(t, s.UnmarshalText([]byte("Redis")))
	assert.Equal(t, StorageRedis, s)

	require.NoError(t, s.UnmarshalText([]byte("memory")))
	assert.Equal(t, StorageMemory, s)

	assert.Error(t, s.UnmarshalText([]byte("postgres")))
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.local")
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestSanitizeClampsDurations(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.local")
	t.Setenv("HTTP_READ_TIMEOUT", "0s")
	t.Setenv("SESSION_TTL", "-1h")
	t.Setenv("CACHE_TTL", "0s")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
}
