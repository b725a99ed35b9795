package proxy

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"openshelf/core/apperr"
)

// Fetcher retrieves raw remote text content through a timeout-bounded
// relay. Every failure is normalized into the error taxonomy before it
// leaves this package.
type Fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// NewFetcher creates a fetcher with its own transport so that timeouts and
// connection reuse are isolated from other HTTP clients in the process.
func NewFetcher(cfg Config) *Fetcher {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Fetcher{
		client:    &http.Client{Transport: transport},
		userAgent: cfg.UserAgent,
		timeout:   timeoutDuration,
	}
}

// Fetch retrieves the text body at url. The request is cancelled when the
// configured timeout elapses; a non-success upstream status fails without
// reading the body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", apperr.Validation("url parameter is required")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperr.Validation("malformed url: " + err.Error())
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", apperr.Timeout("upstream fetch timed out", err)
		}
		return "", apperr.Internal("upstream fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.Upstream(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", apperr.Timeout("upstream body read timed out", err)
		}
		return "", apperr.Internal("upstream body read failed", err)
	}

	// Any truncation (preview caps etc.) is the caller's concern.
	return string(body), nil
}

// isTimeout reports whether err is a transport-level timeout.
func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
