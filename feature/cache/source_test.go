package cache_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"openshelf/core/apperr"
	"openshelf/feature/cache"

	"github.com/stretchr/testify/assert"
)

const bookPayload = `{
  "id": 42,
  "title": "The Strange Case",
  "authors": [{"name": "Stevenson, Robert Louis"}],
  "summaries": ["A novella."],
  "subjects": ["Horror tales", "Psychological fiction"],
  "formats": {
    "image/jpeg": "https://example.org/42.cover.jpg",
    "text/plain": "https://example.org/42.txt"
  },
  "download_count": 9001
}`

func TestFetchBookMapsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bookPayload))
	}))
	defer srv.Close()

	client := cache.NewSourceClient(cache.Config{
		Prefix:               "ext-",
		SourceURL:            srv.URL,
		SourceTimeoutSeconds: 5,
	})

	entry, err := client.FetchBook(context.Background(), "42")
	assert.NoError(t, err)
	assert.Equal(t, "ext-42", entry.ID)
	assert.Equal(t, "The Strange Case", entry.Title)
	assert.Equal(t, "Stevenson, Robert Louis", entry.Author)
	assert.Equal(t, "https://example.org/42.cover.jpg", entry.CoverURL)
	assert.Equal(t, "A novella.", entry.Description)
	assert.Equal(t, "Horror tales", entry.Genre)
	assert.Equal(t, 9001, entry.DownloadCount)
}

func TestFetchBookUpstreamStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/404":
			w.WriteHeader(http.StatusNotFound)
		case "/503":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			_, _ = w.Write([]byte("{not json"))
		}
	}))
	defer srv.Close()

	client := cache.NewSourceClient(cache.Config{Prefix: "ext-", SourceURL: srv.URL, SourceTimeoutSeconds: 5})
	ctx := context.Background()

	_, err := client.FetchBook(ctx, "404")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = client.FetchBook(ctx, "503")
	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
	assert.Equal(t, 503, apperr.StatusOf(err))

	_, err = client.FetchBook(ctx, "garbled")
	assert.True(t, apperr.IsKind(err, apperr.KindDecode))
}

func TestFetchBookTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	client := cache.NewSourceClient(cache.Config{Prefix: "ext-", SourceURL: srv.URL, SourceTimeoutSeconds: 1})

	_, err := client.FetchBook(context.Background(), "42")
	assert.True(t, apperr.IsKind(err, apperr.KindTimeout))
}

func TestNewSourceClientDisabled(t *testing.T) {
	assert.Nil(t, cache.NewSourceClient(cache.Config{Prefix: "ext-"}))
}
