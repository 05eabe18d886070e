package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/ports"
	"github.com/staffdesk/ui-gateway/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func testSession(id string) auth.Session {
	return auth.Session{
		ID:        id,
		Token:     "tok-" + id,
		User:      &auth.User{ID: 3, Name: "Sam Ortiz", Email: "sam@example.com", Role: auth.RoleEmployee},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	sess := testSession("redis-session-1")
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "redis-session-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Token, got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, sess.User.Email, got.User.Email)
	assert.Equal(t, auth.RoleEmployee, got.User.Role)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("redis-session-del")))
	require.NoError(t, store.Delete(ctx, "redis-session-del"))
	require.NoError(t, store.Delete(ctx, "redis-session-del"))

	_, err := store.Get(ctx, "redis-session-del")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_SaveRejectsExpired(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	sess := testSession("redis-session-exp")
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	assert.Error(t, store.Save(context.Background(), sess))
}

func TestSessionStore_MalformedRecordDropped(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "session:mangled", "{not json", time.Minute).Err())

	_, err := store.Get(ctx, "mangled")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	exists, err := client.Exists(ctx, "session:mangled").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "sd:sess:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("prefixed")))

	exists, err := client.Exists(ctx, "sd:sess:prefixed").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, exists)
}
