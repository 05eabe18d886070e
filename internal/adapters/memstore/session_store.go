// Package memstore provides in-memory adapters for single-instance
// deployments. Records do not survive a restart.
package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/ports"
)

// SessionStore keeps session records in process memory, guarded by a mutex.
// Records are stored as JSON so that memory and Redis deployments share the
// same serialization contract.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]byte)}
}

func (s *SessionStore) Save(_ context.Context, sess auth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = data
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (auth.Session, error) {
	if id == "" {
		return auth.Session{}, ports.ErrSessionNotFound
	}

	s.mu.RLock()
	data, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return auth.Session{}, ports.ErrSessionNotFound
	}

	var sess auth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// An unreadable record is as good as absent; drop it.
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return auth.Session{}, ports.ErrSessionNotFound
	}

	if !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return auth.Session{}, ports.ErrSessionNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
