package service

import (
	"context"
	"testing"
	"time"

	"eventplanner/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTokenStore(t *testing.T) (TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTokenStore(client), mr
}

func TestTokenStore_StoreAndValidate(t *testing.T) {
	store, mr := setupTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, 7, jwt.AccessToken, "abc", time.Minute))
	assert.True(t, mr.Exists("access_token:7:abc"))

	valid, err := store.IsValid(ctx, 7, jwt.AccessToken, "abc")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = store.IsValid(ctx, 7, jwt.RefreshToken, "abc")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTokenStore_Expiry(t *testing.T) {
	store, mr := setupTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, 7, jwt.RefreshToken, "r1", time.Minute))
	mr.FastForward(2 * time.Minute)

	valid, err := store.IsValid(ctx, 7, jwt.RefreshToken, "r1")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTokenStore_Revoke(t *testing.T) {
	store, _ := setupTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, 7, jwt.AccessToken, "abc", time.Minute))
	require.NoError(t, store.Revoke(ctx, 7, jwt.AccessToken, "abc"))

	valid, err := store.IsValid(ctx, 7, jwt.AccessToken, "abc")
	require.NoError(t, err)
	assert.False(t, valid)

	assert.NoError(t, store.Revoke(ctx, 7, jwt.AccessToken, ""))
}

func TestTokenStore_RevokeAllKeepsOtherUsers(t *testing.T) {
	store, mr := setupTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, 7, jwt.AccessToken, "a1", time.Minute))
	require.NoError(t, store.Store(ctx, 7, jwt.AccessToken, "a2", time.Minute))
	require.NoError(t, store.Store(ctx, 7, jwt.RefreshToken, "r1", time.Hour))
	require.NoError(t, store.Store(ctx, 70, jwt.AccessToken, "x1", time.Minute))

	require.NoError(t, store.RevokeAll(ctx, 7))

	assert.False(t, mr.Exists("access_token:7:a1"))
	assert.False(t, mr.Exists("access_token:7:a2"))
	assert.False(t, mr.Exists("refresh_token:7:r1"))
	assert.True(t, mr.Exists("access_token:70:x1"))
}

func TestTokenStore_RedisDown(t *testing.T) {
	store, mr := setupTokenStore(t)
	mr.Close()

	_, err := store.IsValid(context.Background(), 1, jwt.AccessToken, "abc")
	assert.Error(t, err)
}
