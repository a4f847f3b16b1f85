package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/domain"
)

// exerciseStore runs the contract every KVStore implementation must meet.
func exerciseStore(t *testing.T, store domain.KVStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetAbsent", func(t *testing.T) {
		val, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "tripDetails", []byte(`{"destination":"Lisbon"}`)))

		val, err := store.Get(ctx, "tripDetails")
		require.NoError(t, err)
		assert.JSONEq(t, `{"destination":"Lisbon"}`, string(val))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "selectedDay", []byte(`1`)))
		require.NoError(t, store.Set(ctx, "selectedDay", []byte(`3`)))

		val, err := store.Get(ctx, "selectedDay")
		require.NoError(t, err)
		assert.Equal(t, "3", string(val))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "todoList", []byte(`[]`)))
		require.NoError(t, store.Delete(ctx, "todoList"))

		val, err := store.Get(ctx, "todoList")
		require.NoError(t, err)
		assert.Nil(t, val)

		// Deleting an absent key is a no-op.
		require.NoError(t, store.Delete(ctx, "todoList"))
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte(`{"days":5}`)
	require.NoError(t, store.Set(ctx, "tripDetails", value))
	value[2] = 'X'

	got, err := store.Get(ctx, "tripDetails")
	require.NoError(t, err)
	assert.Equal(t, `{"days":5}`, string(got))

	got[0] = 'Y'
	again, err := store.Get(ctx, "tripDetails")
	require.NoError(t, err)
	assert.Equal(t, `{"days":5}`, string(again))
}

func TestRedisStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	exerciseStore(t, NewRedisStore(client, "wanderplan"))

	t.Run("PrefixedKeys", func(t *testing.T) {
		store := NewRedisStore(client, "wanderplan")
		require.NoError(t, store.Set(context.Background(), "activities", []byte(`[]`)))
		assert.True(t, s.Exists("wanderplan:activities"))
	})
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "trip.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trip.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "activities", []byte(`[{"id":1}]`)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	val, err := reopened.Get(ctx, "activities")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(val))
}

// brokenStore always fails, standing in for an unreachable primary.
type brokenStore struct{}

var errStoreDown = errors.New("store down")

func (brokenStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, errStoreDown }
func (brokenStore) Set(ctx context.Context, key string, value []byte) error {
	return errStoreDown
}
func (brokenStore) Delete(ctx context.Context, key string) error { return errStoreDown }

func TestFailoverStore(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("PrimaryHealthy", func(t *testing.T) {
		primary := NewMemoryStore()
		fallback := NewMemoryStore()
		store := NewFailoverStore(primary, fallback, &logger)

		require.NoError(t, store.Set(ctx, "tripDetails", []byte(`{}`)))

		val, err := primary.Get(ctx, "tripDetails")
		require.NoError(t, err)
		assert.NotNil(t, val)

		val, err = fallback.Get(ctx, "tripDetails")
		require.NoError(t, err)
		assert.Nil(t, val, "fallback untouched while primary is healthy")
	})

	t.Run("FallsBackOnError", func(t *testing.T) {
		fallback := NewMemoryStore()
		store := NewFailoverStore(brokenStore{}, fallback, &logger)

		downgrades := 0
		store.OnDowngrade(func() { downgrades++ })

		require.NoError(t, store.Set(ctx, "activities", []byte(`[]`)))
		assert.Equal(t, 1, downgrades)

		val, err := store.Get(ctx, "activities")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(val))

		// Subsequent calls stay on the fallback without re-probing inside
		// the recovery window.
		require.NoError(t, store.Delete(ctx, "activities"))
		assert.Equal(t, 1, downgrades)
	})
}
