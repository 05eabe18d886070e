package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/ui-gateway/internal/adapters/memstore"
	"github.com/staffdesk/ui-gateway/internal/domain/auth"
	apperrors "github.com/staffdesk/ui-gateway/internal/errors"
	"github.com/staffdesk/ui-gateway/internal/ports"
	"github.com/staffdesk/ui-gateway/internal/testutil"
)

// fakeAuthAPI is a hand-written AuthAPI double.
type fakeAuthAPI struct {
	loginResp    ports.LoginResponse
	loginErr     error
	registerResp map[string]any
	registerErr  error
	claims       map[string]any

	loginCalls    int
	registerCalls int
	decodeCalls   int
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (ports.LoginResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) Register(_ context.Context, _, _, _ string) (map[string]any, error) {
	f.registerCalls++
	return f.registerResp, f.registerErr
}

func (f *fakeAuthAPI) DecodeToken(_ string) map[string]any {
	f.decodeCalls++
	return f.claims
}

func newTestManager(api ports.AuthAPI) (*SessionManager, *memstore.SessionStore) {
	store := memstore.NewSessionStore()
	mgr := NewSessionManager(SessionManagerOptions{
		AuthAPI:  api,
		Sessions: store,
		TTL:      time.Hour,
		Logger:   slog.New(slog.DiscardHandler),
		Now:      testutil.FixedTimeFunc(testutil.TestTime()),
	})
	return mgr, store
}

func TestLoginCreatesSession(t *testing.T) {
	api := &fakeAuthAPI{
		loginResp: ports.LoginResponse{
			Token: "tok-1",
			User: map[string]any{
				"user_id": float64(7),
				"name":    "Ada Park",
				"email":   "ada@example.com",
				"role":    "Manager",
			},
		},
	}
	mgr, store := newTestManager(api)
	ctx := context.Background()

	res := mgr.Login(ctx, "ada@example.com", "hunter2")
	require.True(t, res.OK)
	assert.NotEmpty(t, res.Session.ID)
	assert.Equal(t, "tok-1", res.Session.Token)
	require.NotNil(t, res.Session.User)
	assert.Equal(t, int64(7), res.Session.User.ID)
	assert.Equal(t, auth.RoleManager, res.Session.User.Role)
	assert.Equal(t, testutil.TestTime().Add(time.Hour), res.Session.ExpiresAt)

	// The record is persisted wholesale.
	stored, err := store.Get(ctx, res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Session.Token, stored.Token)
	assert.Equal(t, auth.RoleManager, stored.User.Role)
}

func TestLoginFailureUsesBackendMessage(t *testing.T) {
	api := &fakeAuthAPI{loginErr: apperrors.BackendRejected("Invalid credentials")}
	mgr, _ := newTestManager(api)

	res := mgr.Login(context.Background(), "ada@example.com", "wrong")
	assert.False(t, res.OK)
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.Empty(t, res.Session.ID)
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	api := &fakeAuthAPI{loginErr: apperrors.Transport("backend unreachable")}
	mgr, _ := newTestManager(api)

	res := mgr.Login(context.Background(), "ada@example.com", "pw")
	assert.False(t, res.OK)
	assert.Equal(t, "Login failed", res.Message)
}

func TestRegisterDoesNotCreateSession(t *testing.T) {
	api := &fakeAuthAPI{registerResp: map[string]any{"id": float64(12)}}
	mgr, store := newTestManager(api)
	ctx := context.Background()

	res := mgr.Register(ctx, "Sam Ortiz", "sam@example.com", "pw")
	require.True(t, res.OK)
	assert.Equal(t, map[string]any{"id": float64(12)}, res.Data)

	// No session record was written anywhere.
	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.Equal(t, 0, api.loginCalls)
}

func TestRegisterFailureFallbackMessage(t *testing.T) {
	api := &fakeAuthAPI{registerErr: apperrors.Transport("down")}
	mgr, _ := newTestManager(api)

	res := mgr.Register(context.Background(), "Sam", "sam@example.com", "pw")
	assert.False(t, res.OK)
	assert.Equal(t, "Registration failed", res.Message)
}

func TestResolveReturnsStoredSession(t *testing.T) {
	api := &fakeAuthAPI{}
	mgr, store := newTestManager(api)
	ctx := context.Background()

	sess := auth.Session{
		ID:        "s1",
		Token:     "tok",
		User:      &auth.User{ID: 3, Role: auth.RoleEmployee},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := mgr.Resolve(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.User.ID)
	// The user is already known; no claim decode happens.
	assert.Equal(t, 0, api.decodeCalls)
}

func TestResolveBackfillsUserFromClaims(t *testing.T) {
	api := &fakeAuthAPI{
		claims: map[string]any{"user_id": float64(7), "role": "Manager"},
	}
	mgr, store := newTestManager(api)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, auth.Session{
		ID:        "s1",
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	got, err := mgr.Resolve(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, int64(7), got.User.ID)
	assert.Equal(t, auth.RoleManager, got.User.Role)

	// The completed record is persisted; the next resolve needs no decode.
	stored, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, stored.User)
	assert.Equal(t, int64(7), stored.User.ID)

	_, err = mgr.Resolve(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, api.decodeCalls)
}

func TestResolveUnreadableTokenDropsSession(t *testing.T) {
	api := &fakeAuthAPI{claims: nil}
	mgr, store := newTestManager(api)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, auth.Session{
		ID:        "s1",
		Token:     "garbage",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, err := mgr.Resolve(ctx, "s1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestResolveUnknownSession(t *testing.T) {
	mgr, _ := newTestManager(&fakeAuthAPI{})

	_, err := mgr.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestLogoutIsIdempotent(t *testing.T) {
	api := &fakeAuthAPI{}
	mgr, store := newTestManager(api)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, auth.Session{
		ID:        "s1",
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	mgr.Logout(ctx, "s1")
	mgr.Logout(ctx, "s1")
	mgr.Logout(ctx, "never-existed")

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestForceLogoutDeletesRecord(t *testing.T) {
	api := &fakeAuthAPI{}
	mgr, store := newTestManager(api)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, auth.Session{
		ID:        "s1",
		Token:     "stale",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	mgr.ForceLogout(ctx, "s1")
	mgr.ForceLogout(ctx, "s1")

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}
