package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client), mr
}

func TestStore_Categories(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		_, err := store.GetCategories(ctx)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		want := domain.CategoryMap{1: "Science", 2: "Art"}
		require.NoError(t, store.SetCategories(ctx, want, time.Minute))

		got, err := store.GetCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Expires", func(t *testing.T) {
		require.NoError(t, store.SetCategories(ctx, domain.CategoryMap{1: "Science"}, time.Minute))
		mr.FastForward(2 * time.Minute)

		_, err := store.GetCategories(ctx)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Corrupt", func(t *testing.T) {
		require.NoError(t, mr.Set(categoriesKey, "not json"))
		_, err := store.GetCategories(ctx)
		assert.ErrorContains(t, err, "unmarshal")
	})
}

func TestStore_Allow(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := store.Allow(ctx, "10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, err := store.Allow(ctx, "10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Allow(ctx, "10.0.0.2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(time.Minute + time.Second)
	ok, err = store.Allow(ctx, "10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, store.Ping(ctx))
}
