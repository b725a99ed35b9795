package cache_test

import (
	"context"
	"testing"
	"time"

	"openshelf/core/apperr"
	"openshelf/core/database"
	"openshelf/feature/cache"
	cachemodels "openshelf/feature/cache/models"
	catalogmodels "openshelf/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// newTestDB returns an in-memory database migrated for both the cache and
// catalog tables.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&cachemodels.CacheEntry{}, &catalogmodels.NativeBook{}))
	return db
}

func TestStoreGetSet(t *testing.T) {
	store := cache.NewStore(newTestDB(t))
	ctx := context.Background()

	entry := cachemodels.CacheEntry{
		ID:       "ext-42",
		Title:    "Moby Dick",
		Author:   "Herman Melville",
		CoverURL: "https://example.org/42.jpg",
	}
	assert.NoError(t, store.Set(ctx, &entry))
	assert.False(t, entry.CachedAt.IsZero())

	got, err := store.Get(ctx, "ext-42")
	assert.NoError(t, err)
	assert.Equal(t, "Moby Dick", got.Title)

	_, err = store.Get(ctx, "ext-43")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestStoreSetOverwritesAndRefreshesCachedAt(t *testing.T) {
	store := cache.NewStore(newTestDB(t))
	ctx := context.Background()

	first := cachemodels.CacheEntry{ID: "ext-42", Title: "First", CachedAt: time.Now()}
	assert.NoError(t, store.Set(ctx, &first))

	got1, err := store.Get(ctx, "ext-42")
	assert.NoError(t, err)

	// Small step so the refreshed timestamp is strictly later.
	time.Sleep(5 * time.Millisecond)

	second := cachemodels.CacheEntry{ID: "ext-42", Title: "Second"}
	assert.NoError(t, store.Set(ctx, &second))

	got2, err := store.Get(ctx, "ext-42")
	assert.NoError(t, err)
	assert.Equal(t, "Second", got2.Title)
	assert.True(t, got2.CachedAt.After(got1.CachedAt))

	all, err := store.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStoreDeleteIdempotent(t *testing.T) {
	store := cache.NewStore(newTestDB(t))
	ctx := context.Background()

	entry := cachemodels.CacheEntry{ID: "ext-42", Title: "T"}
	assert.NoError(t, store.Set(ctx, &entry))

	assert.NoError(t, store.Delete(ctx, "ext-42"))
	// Deleting an absent id is not an error.
	assert.NoError(t, store.Delete(ctx, "ext-42"))

	_, err := store.Get(ctx, "ext-42")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestStoreListAllSnapshot(t *testing.T) {
	store := cache.NewStore(newTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"ext-1", "ext-2", "ext-3"} {
		e := cachemodels.CacheEntry{ID: id, Title: id}
		assert.NoError(t, store.Set(ctx, &e))
	}

	all, err := store.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}
