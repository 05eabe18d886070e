// Package redisstore provides a Redis-backed session store for multi-instance
// deployments. TTL semantics derive from each session's ExpiresAt.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/ports"
)

// SessionStore is a Redis-based session store.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, prefix: "session:"}
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) Save(ctx context.Context, sess auth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := s.prefix + sess.ID
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (auth.Session, error) {
	if id == "" {
		return auth.Session{}, ports.ErrSessionNotFound
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.Session{}, ports.ErrSessionNotFound
		}
		return auth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess auth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		// An unreadable record is as good as absent; drop it.
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return auth.Session{}, fmt.Errorf("cleanup unreadable session: %w", deleteErr)
		}
		return auth.Session{}, ports.ErrSessionNotFound
	}

	// Double-check expiration (Redis TTL should handle this, but be defensive)
	if time.Now().After(sess.ExpiresAt) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return auth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return auth.Session{}, ports.ErrSessionNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

var _ ports.SessionStore = (*SessionStore)(nil)
