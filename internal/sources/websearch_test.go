// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/code-rag/internal/fetch"
	"github.com/pdiddy/code-rag/pkg/types"
)

const testSearchURL = "https://html.duckduckgo.com/html/"

const resultsPage = `<html><body>
<a href="/settings">Settings</a>
<div class="result results_links">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fdocs.example.org%2Fmerge&amp;rut=abc">Merge <b>docs</b></a>
  <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fdocs.example.org%2Fmerge&amp;rut=abc">snippet text</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://blog.example.com/pandas-merge">Pandas merge tutorial</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://third.example.net/x">Third</a>
</div>
<a href="https://duckduckgo.com/about">About DuckDuckGo</a>
<a href="javascript:void(0)">Script</a>
</body></html>`

const longPara = "pandas merge joins two frames on a key column and returns a new frame with the combined rows."

// fakeWeb serves canned bodies by URL and records every fetched URL.
type fakeWeb struct {
	pages   map[string]string
	fail    map[string]bool
	fetched []string
}

func (f *fakeWeb) fetcher() fetch.Fetcher {
	return fetch.Func(func(_ context.Context, u string) (string, error) {
		f.fetched = append(f.fetched, u)
		if strings.HasPrefix(u, testSearchURL) {
			if f.fail[testSearchURL] {
				return "", errors.New("search unavailable")
			}
			return resultsPage, nil
		}
		if f.fail[u] {
			return "", errors.New("connection reset")
		}
		body, ok := f.pages[u]
		if !ok {
			return "", errors.New("not found")
		}
		return body, nil
	})
}

func newTestWebSearch(f *fakeWeb) *WebSearch {
	return NewWebSearch(f.fetcher(), types.SearchConfig{SearchURL: testSearchURL, MaxResults: 3}, nil)
}

func TestWebSearch_Query(t *testing.T) {
	f := &fakeWeb{pages: map[string]string{
		"https://docs.example.org/merge":        longPara,
		"https://blog.example.com/pandas-merge": "short\n\n" + longPara,
	}}
	s := newTestWebSearch(f)

	got, err := s.Query(context.Background(), types.QueryContext{
		Query: "pandas merge", Type: types.QueryAPIDoc, MaxResults: 2,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Merge docs", got[0].Title)
	assert.Equal(t, "https://docs.example.org/merge", got[0].URL)
	assert.Equal(t, "docs.example.org", got[0].Source)
	assert.Equal(t, longPara, got[0].Content)

	assert.Equal(t, "Pandas merge tutorial", got[1].Title)
	assert.Equal(t, longPara, got[1].Content, "short paragraphs are dropped")

	require.Len(t, f.fetched, 3, "search page plus two links")
	searched, err := url.Parse(f.fetched[0])
	require.NoError(t, err)
	assert.Equal(t, "pandas merge documentation example", searched.Query().Get("q"))
}

func TestWebSearch_DropsFailedLinks(t *testing.T) {
	f := &fakeWeb{
		pages: map[string]string{
			"https://blog.example.com/pandas-merge": longPara,
			"https://third.example.net/x":           longPara,
		},
		fail: map[string]bool{"https://docs.example.org/merge": true},
	}
	got, err := newTestWebSearch(f).Query(context.Background(), types.QueryContext{Query: "pandas merge"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://blog.example.com/pandas-merge", got[0].URL)
	assert.Equal(t, "https://third.example.net/x", got[1].URL)
}

func TestWebSearch_SearchPageFailure(t *testing.T) {
	f := &fakeWeb{fail: map[string]bool{testSearchURL: true}}
	_, err := newTestWebSearch(f).Query(context.Background(), types.QueryContext{Query: "x"})
	assert.ErrorContains(t, err, "search unavailable")
}

func TestWebSearch_EmptyQuery(t *testing.T) {
	f := &fakeWeb{}
	got, err := newTestWebSearch(f).Query(context.Background(), types.QueryContext{Query: "  "})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, f.fetched)
}

func TestEnhanceQuery(t *testing.T) {
	assert.Equal(t, "q solution fix", enhanceQuery("q", types.QueryErrorSolution))
	assert.Equal(t, "q code example tutorial", enhanceQuery("q", types.QueryImplementation))
	assert.Equal(t, "q", enhanceQuery("q", ""))
}

func TestParseResultLinks(t *testing.T) {
	base, err := url.Parse(testSearchURL)
	require.NoError(t, err)

	links, err := parseResultLinks(resultsPage, base)
	require.NoError(t, err)
	assert.Equal(t, []link{
		{URL: "https://docs.example.org/merge", Title: "Merge docs"},
		{URL: "https://blog.example.com/pandas-merge", Title: "Pandas merge tutorial"},
		{URL: "https://third.example.net/x", Title: "Third"},
	}, links)
}

func TestParseResultLinks_MultiLabelSuffix(t *testing.T) {
	base, err := url.Parse("https://www.google.co.uk/search")
	require.NoError(t, err)
	page := `<html><body>
<a href="/preferences">Settings</a>
<a href="https://maps.google.co.uk/">Maps</a>
<a href="https://www.bbc.co.uk/x">BBC</a>
<a href="https://docs.python.org/3/">Py</a>
</body></html>`

	links, err := parseResultLinks(page, base)
	require.NoError(t, err)
	assert.Equal(t, []link{
		{URL: "https://www.bbc.co.uk/x", Title: "BBC"},
		{URL: "https://docs.python.org/3/", Title: "Py"},
	}, links)
}

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"html.duckduckgo.com", "duckduckgo.com"},
		{"www.google.co.uk", "google.co.uk"},
		{"duckduckgo.com", "duckduckgo.com"},
		{"localhost", "localhost"},
		{"127.0.0.1", "127.0.0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, registrableDomain(tt.host), tt.host)
	}
}

func TestRelevantContent(t *testing.T) {
	code := "```\ndef merge(left, right):\n    return left.join(right)  # joins frames\n```"
	noise := strings.Repeat("unrelated filler text ", 5)
	typed := "This usage note explains the arguments that control the join behaviour."
	body := strings.Join([]string{noise, typed, code, "tiny"}, "\n\n")

	got := relevantContent(body, "site:x.org merge frames", types.QueryAPIDoc)
	parts := strings.Split(got, "\n\n")
	require.Len(t, parts, 3)
	assert.Equal(t, code, parts[0])
	assert.Equal(t, typed, parts[1])
	assert.Equal(t, noise, parts[2])
}

func TestRelevantContent_KeepsFiveParagraphs(t *testing.T) {
	var paras []string
	for i := 0; i < 8; i++ {
		paras = append(paras, longPara)
	}
	got := relevantContent(strings.Join(paras, "\n\n"), "merge", types.QueryImplementation)
	assert.Len(t, strings.Split(got, "\n\n"), 5)
}

func TestHTMLToText(t *testing.T) {
	page := `<html><head><style>body{}</style><script>var x;</script></head><body>
<nav>Home | Docs</nav>
<h1>Merging</h1>
<p>Use   merge to combine frames.</p>
<pre>df.merge(other,
    on="key")</pre>
</body></html>`
	got, err := htmlToText(page)
	require.NoError(t, err)
	assert.Equal(t, "Merging\n\nUse merge to combine frames.\n\n```\ndf.merge(other,\n    on=\"key\")\n```", got)
}
