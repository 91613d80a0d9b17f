// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pdiddy/code-rag/internal/applog"
	"github.com/pdiddy/code-rag/pkg/types"
)

// GitHub searches github.com for code examples.
type GitHub struct {
	Web    Source
	Logger *slog.Logger
}

// Name returns the channel identifier.
func (s *GitHub) Name() string { return NameGitHub }

// Query adds a language filter when qc.Language is set and records the
// owner/repo of every github.com result.
func (s *GitHub) Query(ctx context.Context, qc types.QueryContext) ([]types.Candidate, error) {
	if qc.Query == "" {
		applog.OrDefault(s.Logger).Warn("github skipped: empty query")
		return nil, nil
	}

	q := "site:github.com " + qc.Query
	if qc.Language != "" {
		q += " language:" + qc.Language
	}
	results, err := s.Web.Query(ctx, qc.WithQuery(q))
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Platform = types.PlatformGitHub
		results[i].Repository = repositoryOf(results[i].URL)
	}
	return results, nil
}

// repositoryOf returns "owner/repo" for github.com URLs with at least two
// path segments.
func repositoryOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host != "github.com" {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0] + "/" + parts[1]
}
