package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func TestAsideMissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetchCalls := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetchCalls++
			*dest = cachedUser{ID: 1, Username: "alice"}
			return nil
		}
	}

	var got cachedUser
	require.NoError(t, Aside(ctx, UserKey(1), &got, UserTTL, fetch(&got)))
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, 1, fetchCalls)

	var again cachedUser
	require.NoError(t, Aside(ctx, UserKey(1), &again, UserTTL, fetch(&again)))
	assert.Equal(t, "alice", again.Username)
	assert.Equal(t, 1, fetchCalls, "second read must be served from cache")
}

func TestAsidePropagatesFetchError(t *testing.T) {
	setupMiniredis(t)

	var got cachedUser
	fetchErr := errors.New("db down")
	err := Aside(context.Background(), UserKey(2), &got, UserTTL, func() error {
		return fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)
}

func TestAsideWithoutRedis(t *testing.T) {
	SetClient(nil)

	var got cachedUser
	err := Aside(context.Background(), UserKey(3), &got, UserTTL, func() error {
		got = cachedUser{ID: 3, Username: "carol"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)
}

func TestInvalidateUser(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1}, UserTTL))
	require.NoError(t, SetJSON(ctx, UsernameKey("alice"), cachedUser{ID: 1}, UserTTL))

	InvalidateUser(ctx, 1, "alice")

	assert.False(t, mr.Exists(UserKey(1)))
	assert.False(t, mr.Exists(UsernameKey("alice")))
}

func TestTokenBlacklist(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()
	bl := NewTokenBlacklist()

	revoked, err := bl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Add(ctx, "jti-1", time.Minute))

	revoked, err = bl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// The entry lapses with the token's own expiry.
	mr.FastForward(2 * time.Minute)
	revoked, err = bl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
