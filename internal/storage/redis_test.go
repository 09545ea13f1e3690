package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:abc", []byte(`[{"id":"1"}]`)))
	data, err := store.Get(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), data)
}

func TestRedisStoreMissingKey(t *testing.T) {
	store := newTestRedisStore(t)
	_, err := store.Get(context.Background(), "cart:nope")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestRedisStoreOverwrite(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:abc", []byte("old")))
	require.NoError(t, store.Set(ctx, "cart:abc", []byte("new")))
	data, err := store.Get(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestRedisStoreDelete(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:abc", []byte("x")))
	require.NoError(t, store.Delete(ctx, "cart:abc"))
	_, err := store.Get(ctx, "cart:abc")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "cart:abc")
	assert.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, store.Set(ctx, "cart:abc", []byte("snapshot")))
	data, err := store.Get(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("snapshot"), data)

	require.NoError(t, store.Delete(ctx, "cart:abc"))
	_, err = store.Get(ctx, "cart:abc")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}
