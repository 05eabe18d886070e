package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/staffdesk/ui-gateway/config"
	"github.com/staffdesk/ui-gateway/internal/adapters/backendapi"
	"github.com/staffdesk/ui-gateway/internal/adapters/memcache"
	"github.com/staffdesk/ui-gateway/internal/adapters/memstore"
	"github.com/staffdesk/ui-gateway/internal/adapters/rediscache"
	"github.com/staffdesk/ui-gateway/internal/adapters/redisstore"
	"github.com/staffdesk/ui-gateway/internal/ports"
	"github.com/staffdesk/ui-gateway/internal/service"
)

// ConnectRedis connects and pings the Redis server.
//
//nolint:ireturn // returning redis.UniversalClient keeps cluster support open.
func ConnectRedis(cfg config.RedisConfig) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// BuildSessionStore selects the session store implementation from config.
//
//nolint:ireturn // the caller programs against the port.
func BuildSessionStore(cfg config.SessionConfig, redisClient redis.UniversalClient) (ports.SessionStore, error) {
	switch cfg.Store {
	case config.StorageRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("session store %q requires a redis connection", cfg.Store)
		}
		return redisstore.NewSessionStoreWithPrefix(redisClient, cfg.KeyPrefix), nil
	case config.StorageMemory:
		return memstore.NewSessionStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// BuildCache selects the query cache implementation from config.
//
//nolint:ireturn // the caller programs against the port.
func BuildCache(cfg config.CacheConfig, redisClient redis.UniversalClient) (ports.Cache, error) {
	switch cfg.Backend {
	case config.StorageRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("cache backend %q requires a redis connection", cfg.Backend)
		}
		return rediscache.New(redisClient, cfg.KeyPrefix), nil
	case config.StorageMemory:
		return memcache.New(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Services bundles the application services the HTTP layer consumes.
type Services struct {
	Sessions *service.SessionManager
	Queries  *service.QueryService
}

// ServiceDeps contains the inputs for NewServices.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices builds the backend client, stores, and services, and closes
// the forced-logout loop between transport and session manager.
func NewServices(deps *ServiceDeps) (*Services, error) {
	cfg := deps.Config

	sessions, err := BuildSessionStore(cfg.Session, deps.RedisClient)
	if err != nil {
		return nil, err
	}
	cache, err := BuildCache(cfg.Cache, deps.RedisClient)
	if err != nil {
		return nil, err
	}

	client := backendapi.NewClient(backendapi.ClientOptions{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  deps.Logger,
	})

	manager := service.NewSessionManager(service.SessionManagerOptions{
		AuthAPI:  client,
		Sessions: sessions,
		TTL:      cfg.Session.TTL,
		Logger:   deps.Logger,
	})
	// The client reports credential rejections back to the session manager.
	client.SetForcedLogout(manager)

	queries := service.NewQueryService(service.QueryServiceOptions{
		Admin:    client,
		Employee: client,
		Roles:    client,
		Cache:    cache,
		TTL:      cfg.Cache.TTL,
		Logger:   deps.Logger,
	})

	return &Services{Sessions: manager, Queries: queries}, nil
}
