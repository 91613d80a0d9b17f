// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/code-rag/internal/applog"
	"github.com/pdiddy/code-rag/internal/fetch"
	"github.com/pdiddy/code-rag/pkg/types"
)

const (
	// maxParagraphs is how many scored paragraphs make up a candidate's content.
	maxParagraphs = 5

	// minParagraphRunes drops navigation crumbs and other short fragments.
	minParagraphRunes = 50
)

var (
	querySuffix = map[types.QueryType]string{
		types.QueryAPIDoc:         "documentation example",
		types.QueryErrorSolution:  "solution fix",
		types.QueryImplementation: "code example tutorial",
	}

	typeKeywords = map[types.QueryType][]string{
		types.QueryAPIDoc:         {"example", "usage", "api", "function"},
		types.QueryErrorSolution:  {"error", "exception", "fix", "solution"},
		types.QueryImplementation: {"implementation", "example", "tutorial", "guide"},
	}

	codeMarkers = []string{"```", "def ", "function ", "class "}

	// Search operators carried in the query are not content terms.
	operatorPrefixes = []string{"site:", "language:", "filename:"}

	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
)

// WebSearch runs a query against an HTML search endpoint and turns the top
// result links into candidates. It fetches the results page and then each
// link one at a time.
type WebSearch struct {
	Fetcher    fetch.Fetcher
	SearchURL  string
	MaxResults int
	Logger     *slog.Logger
}

// NewWebSearch returns a WebSearch using f for every fetch.
func NewWebSearch(f fetch.Fetcher, cfg types.SearchConfig, logger *slog.Logger) *WebSearch {
	searchURL := cfg.SearchURL
	if searchURL == "" {
		searchURL = types.DefaultSearchURL
	}
	return &WebSearch{
		Fetcher:    f,
		SearchURL:  searchURL,
		MaxResults: cfg.MaxResults,
		Logger:     applog.OrDefault(logger),
	}
}

// Name returns the channel identifier.
func (s *WebSearch) Name() string { return NameWeb }

// Query searches for qc.Query and returns up to qc.MaxResults candidates
// with fetched content. A link whose page cannot be fetched is dropped; a
// results page that cannot be fetched or parsed fails the whole query.
func (s *WebSearch) Query(ctx context.Context, qc types.QueryContext) ([]types.Candidate, error) {
	logger := applog.OrDefault(s.Logger)
	if strings.TrimSpace(qc.Query) == "" {
		logger.Warn("web search skipped: empty query")
		return nil, nil
	}
	maxResults := qc.MaxResults
	if maxResults <= 0 {
		maxResults = s.MaxResults
	}
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	searchURL, base, err := s.searchURL(enhanceQuery(qc.Query, qc.Type))
	if err != nil {
		return nil, err
	}
	page, err := s.Fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetching search results: %w", err)
	}
	links, err := parseResultLinks(page, base)
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}
	if len(links) > maxResults {
		links = links[:maxResults]
	}

	var out []types.Candidate
	for _, l := range links {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		body, err := s.Fetcher.Fetch(ctx, l.URL)
		if err != nil {
			logger.Warn("dropping result: fetch failed", "url", l.URL, "error", err)
			continue
		}
		out = append(out, types.Candidate{
			Title:   l.Title,
			Content: relevantContent(body, qc.Query, qc.Type),
			URL:     l.URL,
			Source:  hostOf(l.URL),
		})
	}
	logger.Debug("web search complete", "query", qc.Query, "links", len(links), "candidates", len(out))
	return out, nil
}

func (s *WebSearch) searchURL(q string) (string, *url.URL, error) {
	base, err := url.Parse(s.SearchURL)
	if err != nil {
		return "", nil, fmt.Errorf("parsing search URL %q: %w", s.SearchURL, err)
	}
	params := base.Query()
	params.Set("q", q)
	u := *base
	u.RawQuery = params.Encode()
	return u.String(), base, nil
}

func enhanceQuery(q string, t types.QueryType) string {
	if suffix, ok := querySuffix[t]; ok {
		return q + " " + suffix
	}
	return q
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Hostname()
}

// relevantContent keeps the best scoring paragraphs of a page, best first.
func relevantContent(body, query string, t types.QueryType) string {
	text := body
	if looksLikeHTML(body) {
		if converted, err := htmlToText(body); err == nil {
			text = converted
		}
	}

	terms := queryTerms(query)
	type scored struct {
		score int
		text  string
	}
	var paragraphs []scored
	for _, p := range paragraphSplitRe.Split(text, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(p)) < minParagraphRunes {
			continue
		}
		paragraphs = append(paragraphs, scored{scoreParagraph(p, terms, t), p})
	}
	sort.SliceStable(paragraphs, func(i, j int) bool {
		return paragraphs[i].score > paragraphs[j].score
	})
	if len(paragraphs) > maxParagraphs {
		paragraphs = paragraphs[:maxParagraphs]
	}

	parts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		parts[i] = p.text
	}
	return strings.Join(parts, "\n\n")
}

// queryTerms returns the distinct lower-cased words of query, minus search
// operators.
func queryTerms(query string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if seen[w] || hasAnyPrefix(w, operatorPrefixes) {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}
	return terms
}

func scoreParagraph(p string, terms []string, t types.QueryType) int {
	lower := strings.ToLower(p)
	score := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			score++
		}
	}
	if containsAny(p, codeMarkers) {
		score += 3
	}
	if containsAny(lower, typeKeywords[t]) {
		score += 2
	}
	return score
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
