package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"openshelf/core/apperr"
	"openshelf/feature/cache/models"
)

// SourceClient fetches book metadata from the numeric-id external catalog
// and maps it into cache entries carrying the configured prefix.
type SourceClient struct {
	baseURL string
	prefix  string
	client  *http.Client
}

// NewSourceClient creates a client for the configured source, or nil when
// no source URL is configured (disabling on-demand fetches).
func NewSourceClient(cfg Config) *SourceClient {
	if cfg.SourceURL == "" {
		return nil
	}
	timeout := cfg.SourceTimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &SourceClient{
		baseURL: strings.TrimSuffix(cfg.SourceURL, "/"),
		prefix:  cfg.Prefix,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// sourcePayload mirrors the numeric-id catalog's book JSON.
type sourcePayload struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Summaries     []string          `json:"summaries"`
	Subjects      []string          `json:"subjects"`
	Formats       map[string]string `json:"formats"`
	DownloadCount int               `json:"download_count"`
}

// FetchBook retrieves the record with the given raw source id and converts
// it into a cache entry. Failures are normalized into the error taxonomy.
func (c *SourceClient) FetchBook(ctx context.Context, sourceID string) (*models.CacheEntry, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, sourceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Validation("invalid source request: " + err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, apperr.Timeout("source fetch timed out", err)
		}
		return nil, apperr.Internal("source fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("no source record with id " + sourceID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream(resp.StatusCode)
	}

	var payload sourcePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.Decode("unparseable source payload", err)
	}

	entry := &models.CacheEntry{
		ID:            c.prefix + sourceID,
		Title:         payload.Title,
		CoverURL:      payload.Formats["image/jpeg"],
		DownloadCount: payload.DownloadCount,
	}
	if len(payload.Authors) > 0 {
		entry.Author = payload.Authors[0].Name
	}
	if len(payload.Summaries) > 0 {
		entry.Description = payload.Summaries[0]
	}
	if len(payload.Subjects) > 0 {
		entry.Genre = payload.Subjects[0]
	}

	return entry, nil
}

// isTimeout reports whether err is a transport-level timeout.
func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
