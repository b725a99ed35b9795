package cache_test

import (
	"context"
	"sort"
	"testing"

	"openshelf/feature/cache"
	"openshelf/feature/cache/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newCoordinator(t *testing.T) (*cache.Coordinator, *cache.Store) {
	t.Helper()
	store := cache.NewStore(newTestDB(t))
	return cache.NewCoordinator(store, cache.Classifier{Prefix: "ext-"}, zap.NewNop()), store
}

func seed(t *testing.T, store *cache.Store, ids ...string) {
	t.Helper()
	ctx := context.Background()
	for _, id := range ids {
		e := models.CacheEntry{ID: id, Title: "t-" + id, Author: "A", CoverURL: "u"}
		assert.NoError(t, store.Set(ctx, &e))
	}
}

func TestCleanAll(t *testing.T) {
	coord, store := newCoordinator(t)
	ctx := context.Background()
	seed(t, store, "ext-1", "ext-2", "ext-3")

	res, err := coord.CleanAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Succeeded)
	assert.Equal(t, 0, res.Failed)

	// cleanAll followed by stats yields an empty cache.
	stats, err := coord.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.Details)
}

func TestRebuildFromSourceSkipsMalformed(t *testing.T) {
	coord, store := newCoordinator(t)
	ctx := context.Background()
	seed(t, store, "ext-9") // stale entry, must be wiped

	records := []models.SourceRecord{
		{ID: "ext-1", Title: "One", Author: "A", CoverURL: "u"},
		{ID: "ext-2", Title: "Two", Author: "B", CoverURL: "u"},
		{ID: "2", Title: "No Prefix"},        // shape check fails
		{ID: "ext-x3", Title: "Non Numeric"}, // shape check fails
	}

	res, err := coord.RebuildFromSource(ctx, records)
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 0, res.Failed)

	ids := listIDs(t, store)
	assert.Equal(t, []string{"ext-1", "ext-2"}, ids)
}

func TestRebuildFromSourceIsIdempotent(t *testing.T) {
	coord, store := newCoordinator(t)
	ctx := context.Background()

	records := []models.SourceRecord{
		{ID: "ext-1", Title: "One", Author: "A", CoverURL: "u"},
		{ID: "ext-2", Title: "Two", Author: "B", CoverURL: "u"},
		{ID: "bogus", Title: "Bad"},
	}

	res1, err := coord.RebuildFromSource(ctx, records)
	assert.NoError(t, err)
	first := listIDs(t, store)

	res2, err := coord.RebuildFromSource(ctx, records)
	assert.NoError(t, err)
	second := listIDs(t, store)

	assert.Equal(t, res1, res2)
	assert.Equal(t, first, second)
}

func TestStatsMatchesListing(t *testing.T) {
	coord, store := newCoordinator(t)
	ctx := context.Background()

	entries := []models.CacheEntry{
		{ID: "ext-1", Title: "Valid", Author: "A", CoverURL: "u"},
		{ID: "1", Title: "Shadow"},
		{ID: "ext-2", Title: "Shadow Too", CoverImage: "x"},
		{ID: "ext-3", Title: "Odd"},
	}
	for i := range entries {
		assert.NoError(t, store.Set(ctx, &entries[i]))
	}

	stats, err := coord.Stats(ctx)
	assert.NoError(t, err)

	all, err := store.ListAll(ctx)
	assert.NoError(t, err)

	assert.Equal(t, len(all), stats.Total)
	assert.Equal(t, 1, stats.ValidExternal)
	assert.Equal(t, 2, stats.NativeShadow)
	assert.Equal(t, 1, stats.Suspicious)
	assert.Len(t, stats.Details, stats.Total)
	assert.Equal(t, stats.Total, stats.ValidExternal+stats.NativeShadow+stats.Suspicious)
}

func listIDs(t *testing.T, store *cache.Store) []string {
	t.Helper()
	all, err := store.ListAll(context.Background())
	assert.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, e := range all {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	return ids
}
