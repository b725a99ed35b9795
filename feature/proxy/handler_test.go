package proxy_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"openshelf/feature/proxy"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newProxyApp(t *testing.T, cfg proxy.Config) *fiber.App {
	t.Helper()
	feat := proxy.NewFeature(cfg, zap.NewNop())
	app := fiber.New()
	assert.NoError(t, feat.Load(app))
	return app
}

func TestHandleFetchContentSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("It was the best of times"))
	}))
	defer upstream.Close()

	app := newProxyApp(t, proxy.Config{TimeoutSeconds: 5, CacheMaxAgeSeconds: 3600})

	resp, err := app.Test(httptest.NewRequest("GET", "/proxy/content?url="+upstream.URL, nil), 10000)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "public, max-age=3600", resp.Header.Get(fiber.HeaderCacheControl))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "It was the best of times", string(body))
}

func TestHandleFetchContentMissingURL(t *testing.T) {
	app := newProxyApp(t, proxy.Config{TimeoutSeconds: 5})

	resp, err := app.Test(httptest.NewRequest("GET", "/proxy/content", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestHandleFetchContentUpstreamPassthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer upstream.Close()

	app := newProxyApp(t, proxy.Config{TimeoutSeconds: 5})

	resp, err := app.Test(httptest.NewRequest("GET", "/proxy/content?url="+upstream.URL, nil), 10000)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
