package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func setupRedisTest(t *testing.T) (*RedisStore, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return NewRedisStore(client, "jobmailer"), cleanup
}

func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	var missing testDoc
	err := store.Get(ctx, "nothing-here", &missing)
	assert.ErrorIs(t, err, ErrNotFound)

	doc := testDoc{Name: "alpha", Count: 3, Tags: []string{"go", "smtp"}}
	require.NoError(t, store.Set(ctx, "doc", doc))

	var got testDoc
	require.NoError(t, store.Get(ctx, "doc", &got))
	assert.Equal(t, doc, got)

	// Set replaces the whole document
	require.NoError(t, store.Set(ctx, "doc", testDoc{Name: "beta"}))
	require.NoError(t, store.Get(ctx, "doc", &got))
	assert.Equal(t, "beta", got.Name)
	assert.Empty(t, got.Tags)

	require.NoError(t, store.Delete(ctx, "doc"))
	assert.ErrorIs(t, store.Get(ctx, "doc", &got), ErrNotFound)

	// Deleting a missing key is fine
	assert.NoError(t, store.Delete(ctx, "doc"))
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	runStoreContract(t, store)
}

func TestRedisStore(t *testing.T) {
	store, cleanup := setupRedisTest(t)
	defer cleanup()
	runStoreContract(t, store)
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "jobmailer")
	require.NoError(t, store.Set(context.Background(), "templates", []string{"a"}))

	assert.True(t, mr.Exists("jobmailer:templates"))
}

func TestLocalStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	var got testDoc
	err = store.Get(context.Background(), "broken", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
