// Package ports defines the interfaces between the service layer and its
// adapters: session persistence, the upstream employee backend, and the
// read-path cache.
package ports

import (
	"context"
	"errors"

	"github.com/staffdesk/ui-gateway/internal/domain/auth"
)

// ErrSessionNotFound is returned by SessionStore implementations when no
// record exists for a session ID, or when the stored record is expired or
// unreadable.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists session records keyed by session ID. Records are
// written wholesale; there are no partial updates.
type SessionStore interface {
	// Save stores the session under its ID, replacing any prior record.
	Save(ctx context.Context, session auth.Session) error
	// Get loads the session for the given ID. Returns ErrSessionNotFound
	// when the record is absent, expired, or undecodable.
	Get(ctx context.Context, sessionID string) (auth.Session, error)
	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// LoginResponse carries the backend's successful login answer: the bearer
// token and the raw user document, which the caller normalizes.
type LoginResponse struct {
	Token string
	User  map[string]any
}

// AuthAPI is the slice of the backend that handles credentials and tokens.
type AuthAPI interface {
	// Login exchanges credentials for a token and user document.
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	// Register creates an account. It never yields a session.
	Register(ctx context.Context, name, email, password string) (map[string]any, error)
	// DecodeToken extracts the claim document from a bearer token without
	// contacting the backend. Returns nil when the token is unparseable.
	DecodeToken(token string) map[string]any
}

// ForcedLogoutSink receives credential-rejection notifications. When the
// backend answers 401 to any call, the transport broadcasts the calling
// session's ID here so its record can be discarded.
type ForcedLogoutSink interface {
	ForceLogout(ctx context.Context, sessionID string)
}
