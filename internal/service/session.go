// Package service contains the gateway's application services: session
// lifecycle and cached backend queries.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/ui-gateway/internal/domain/auth"
	apperrors "github.com/staffdesk/ui-gateway/internal/errors"
	"github.com/staffdesk/ui-gateway/internal/ports"
)

// Fallback messages shown when the backend fails without a structured
// message of its own.
const (
	loginFailedMessage    = "Login failed"
	registerFailedMessage = "Registration failed"
)

// Result is the outcome of an auth flow, shaped for direct presentation.
type Result struct {
	OK      bool
	Message string
	Data    map[string]any
}

// LoginResult extends Result with the session created on success.
type LoginResult struct {
	Result
	Session auth.Session
}

// SessionManager owns the session lifecycle: creation at login, resolution
// on each request, and teardown on logout or credential rejection.
type SessionManager struct {
	authAPI  ports.AuthAPI
	sessions ports.SessionStore
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// SessionManagerOptions contains the dependencies for NewSessionManager.
type SessionManagerOptions struct {
	AuthAPI  ports.AuthAPI
	Sessions ports.SessionStore
	// TTL is the session lifetime from login.
	TTL    time.Duration
	Logger *slog.Logger
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// NewSessionManager creates a session manager.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionManager{
		authAPI:  opts.AuthAPI,
		sessions: opts.Sessions,
		ttl:      ttl,
		logger:   logger,
		now:      now,
	}
}

// Login exchanges credentials for a new session. Backend failures of any
// class produce a presentable failure result and leave no session behind.
func (m *SessionManager) Login(ctx context.Context, email, password string) LoginResult {
	resp, err := m.authAPI.Login(ctx, email, password)
	if err != nil {
		m.logger.Info("login rejected", "email", email, "error", err)
		return LoginResult{Result: Result{Message: apperrors.UserMessage(err, loginFailedMessage)}}
	}

	user := auth.NormalizeUser(resp.User)
	now := m.now()
	sess := auth.Session{
		ID:        uuid.NewString(),
		Token:     resp.Token,
		User:      &user,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.sessions.Save(ctx, sess); err != nil {
		m.logger.Error("session save failed", "error", err)
		return LoginResult{Result: Result{Message: loginFailedMessage}}
	}

	m.logger.Info("session created", "session_id", sess.ID, "user_id", user.ID, "role", user.Role)
	return LoginResult{Result: Result{OK: true}, Session: sess}
}

// Register creates an account through the backend. Registration never
// creates or mutates a session; the new account logs in separately.
func (m *SessionManager) Register(ctx context.Context, name, email, password string) Result {
	data, err := m.authAPI.Register(ctx, name, email, password)
	if err != nil {
		m.logger.Info("registration rejected", "email", email, "error", err)
		return Result{Message: apperrors.UserMessage(err, registerFailedMessage)}
	}
	return Result{OK: true, Data: data}
}

// Resolve loads the session for a request. A record holding a token but no
// user is completed once from decoded token claims and persisted, so the
// decode cost is paid a single time per session.
func (m *SessionManager) Resolve(ctx context.Context, sessionID string) (auth.Session, error) {
	sess, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return auth.Session{}, err
	}

	if sess.Token != "" && sess.User == nil {
		claims := m.authAPI.DecodeToken(sess.Token)
		if claims == nil {
			// A token the gateway cannot read is as good as no token.
			if delErr := m.sessions.Delete(ctx, sessionID); delErr != nil {
				m.logger.Warn("session cleanup failed", "session_id", sessionID, "error", delErr)
			}
			return auth.Session{}, ports.ErrSessionNotFound
		}
		user := auth.NormalizeUser(claims)
		sess.User = &user
		if saveErr := m.sessions.Save(ctx, sess); saveErr != nil {
			m.logger.Warn("session backfill save failed", "session_id", sessionID, "error", saveErr)
		}
	}

	return sess, nil
}

// Logout tears the session down. Logging out an absent session is a no-op.
func (m *SessionManager) Logout(ctx context.Context, sessionID string) {
	if err := m.sessions.Delete(ctx, sessionID); err != nil {
		m.logger.Warn("logout delete failed", "session_id", sessionID, "error", err)
	}
}

// ForceLogout discards a session whose credential the backend rejected.
// Subsequent requests with the same cookie see no session and land on the
// login screen.
func (m *SessionManager) ForceLogout(ctx context.Context, sessionID string) {
	m.logger.Info("forced logout", "session_id", sessionID)
	if err := m.sessions.Delete(ctx, sessionID); err != nil &&
		!errors.Is(err, ports.ErrSessionNotFound) {
		m.logger.Warn("forced logout delete failed", "session_id", sessionID, "error", err)
	}
}

var _ ports.ForcedLogoutSink = (*SessionManager)(nil)
