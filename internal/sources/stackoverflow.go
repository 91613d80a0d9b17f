// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strconv"

	"github.com/pdiddy/code-rag/internal/applog"
	"github.com/pdiddy/code-rag/pkg/types"
)

var votesRe = regexp.MustCompile(`(\d+)\s+votes\b`)

// StackOverflow searches stackoverflow.com and orders answers by votes.
type StackOverflow struct {
	Web    Source
	Logger *slog.Logger
}

// Name returns the channel identifier.
func (s *StackOverflow) Name() string { return NameStackOverflow }

// Query tags every candidate with its vote count (zero when the page shows
// none) and returns them sorted by votes, highest first.
func (s *StackOverflow) Query(ctx context.Context, qc types.QueryContext) ([]types.Candidate, error) {
	if qc.Query == "" {
		applog.OrDefault(s.Logger).Warn("stackoverflow skipped: empty query")
		return nil, nil
	}

	results, err := s.Web.Query(ctx, qc.WithQuery("site:stackoverflow.com "+qc.Query))
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Platform = types.PlatformStackOverflow
		results[i].Votes = parseVotes(results[i].Content)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Votes > results[j].Votes
	})
	return results, nil
}

func parseVotes(content string) int {
	m := votesRe.FindStringSubmatch(content)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
