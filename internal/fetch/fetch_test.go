// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/code-rag/pkg/types"
)

func TestHTTPFetcher_ReturnsBody(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer ts.Close()

	f := NewHTTPFetcher(types.Config{}.WithDefaults().Fetch)
	body, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, "<html><body>hello</body></html>", body)
	assert.Equal(t, types.DefaultUserAgent, gotUA)
}

func TestHTTPFetcher_Non200IsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	f := &HTTPFetcher{Client: ts.Client()}
	_, err := f.Fetch(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestHTTPFetcher_TruncatesAtMaxBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer ts.Close()

	f := &HTTPFetcher{Client: ts.Client(), MaxBytes: 10}
	body, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Len(t, body, 10)
}

func TestHTTPFetcher_RespectsTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	f := &HTTPFetcher{Client: &http.Client{Timeout: 20 * time.Millisecond}}
	_, err := f.Fetch(context.Background(), ts.URL)
	assert.Error(t, err)
}

func TestMemo_FetchesOncePerURL(t *testing.T) {
	calls := map[string]int{}
	next := Func(func(_ context.Context, url string) (string, error) {
		calls[url]++
		return "page " + url, nil
	})

	m, err := NewMemo(next, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		page, err := m.Fetch(context.Background(), "https://a.example")
		require.NoError(t, err)
		assert.Equal(t, "page https://a.example", page)
	}
	assert.Equal(t, 1, calls["https://a.example"])
	assert.Equal(t, 1, m.Len())
}

func TestMemo_DoesNotRememberFailures(t *testing.T) {
	calls := 0
	next := Func(func(context.Context, string) (string, error) {
		calls++
		return "", errors.New("boom")
	})

	m, err := NewMemo(next, 8)
	require.NoError(t, err)

	_, err = m.Fetch(context.Background(), "u")
	assert.Error(t, err)
	_, err = m.Fetch(context.Background(), "u")
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Zero(t, m.Len())
}

func TestNewMemo_RejectsBadSize(t *testing.T) {
	_, err := NewMemo(Func(nil), 0)
	assert.Error(t, err)
}
