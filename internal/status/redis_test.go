package status

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(rdb)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore_Get(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Set(ObjectKey("17150012345"), `{
		"statusTrackingId": "17150012345",
		"currentStep": "finalizing",
		"progress": 75,
		"message": "Finalizing account creation",
		"completed": false,
		"error": false,
		"timestamp": 1715001240.5
	}`)

	doc, err := store.Get(context.Background(), "17150012345")
	require.NoError(t, err)
	assert.Equal(t, "finalizing", doc.CurrentStep)
	assert.Equal(t, 75, doc.Progress)
	assert.False(t, doc.Completed)
	assert.Equal(t, "17150012345", doc.StatusTrackingID)
}

func TestRedisStore_NotFound(t *testing.T) {
	store, _ := newRedisStore(t)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Corrupt(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Set(ObjectKey("bad"), "not json at all")

	_, err := store.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestRedisStore_Unavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "any")
	assert.ErrorIs(t, err, ErrUnavailable)
}
