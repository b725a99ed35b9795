package cache_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"openshelf/core/database"
	"openshelf/feature/cache"
	cachemodels "openshelf/feature/cache/models"
	catalogmodels "openshelf/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newCacheApp(t *testing.T) (*fiber.App, *cache.Store) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&cachemodels.CacheEntry{}, &catalogmodels.NativeBook{}))

	// No source URL: the handler must work without on-demand fetching.
	feat := cache.NewFeature(cache.Config{Prefix: "ext-"}, db, nil, zap.NewNop())

	app := fiber.New()
	assert.NoError(t, feat.Load(app))

	// Seed a cached entry and a colliding pair.
	ctx := context.Background()
	store := cache.NewStore(db)
	entry := cachemodels.CacheEntry{ID: "ext-42", Title: "Cached Book", Author: "A", CoverURL: "u"}
	assert.NoError(t, store.Set(ctx, &entry))
	shadow := cachemodels.CacheEntry{ID: "ext-7", Title: "Shadow"}
	assert.NoError(t, store.Set(ctx, &shadow))
	assert.NoError(t, db.Create(&catalogmodels.NativeBook{ID: "7", Title: "Native"}).Error)

	return app, store
}

func TestHandleGetExternalEntry(t *testing.T) {
	app, _ := newCacheApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/books/external/ext-42", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var entry cachemodels.CacheEntry
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.Equal(t, "Cached Book", entry.Title)
}

func TestHandleGetExternalRedirect(t *testing.T) {
	app, _ := newCacheApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/books/external/ext-7", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "7", body["redirect"])
}

func TestHandleGetExternalNotFound(t *testing.T) {
	app, _ := newCacheApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/books/external/ext-404", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestHandleStats(t *testing.T) {
	app, _ := newCacheApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/cache/stats", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats cachemodels.Stats
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.Total)
	assert.Len(t, stats.Details, 2)
}
