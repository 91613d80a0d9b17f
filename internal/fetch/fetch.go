// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch provides the fetch capability the retrieval sources depend
// on: a single Fetch(url) -> text operation plus decorators. Timeouts and
// rate-limit backoff live here, not in the retrieval core.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/code-rag/internal/httputil"
	"github.com/pdiddy/code-rag/pkg/types"
)

// Fetcher returns the body of the page at url as text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Func adapts a plain function to the Fetcher interface.
type Func func(ctx context.Context, url string) (string, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// HTTPFetcher fetches pages over HTTP GET.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string

	// MaxBytes caps the bytes read from a body; the rest is discarded.
	MaxBytes int64

	// RateLimitRetries is passed to httputil.DoWithRetry.
	RateLimitRetries int
}

// NewHTTPFetcher builds an HTTPFetcher from cfg. cfg should already carry
// defaults (see types.Config.WithDefaults).
func NewHTTPFetcher(cfg types.FetchConfig) *HTTPFetcher {
	return &HTTPFetcher{
		Client:           &http.Client{Timeout: cfg.Timeout},
		UserAgent:        cfg.UserAgent,
		MaxBytes:         cfg.MaxBytes,
		RateLimitRetries: cfg.RateLimitRetries,
	}
}

// Fetch issues a GET for url. Non-200 responses are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, f.RateLimitRetries)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = types.DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}
