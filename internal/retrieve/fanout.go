// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/code-rag/internal/sources"
	"github.com/pdiddy/code-rag/pkg/types"
)

// querySources sends qc to every source concurrently and waits for all of
// them. A source that errors or panics is logged and left out; the others
// are merged in source order. failures lists "name: error" per failed source.
func (r *Retriever) querySources(ctx context.Context, qc types.QueryContext) (merged []types.Candidate, failures []string) {
	type sourceResult struct {
		results []types.Candidate
		err     error
	}
	perSource := make([]sourceResult, len(r.sources))

	// Goroutines never return an error so one failing source cannot cancel
	// its siblings through the group context.
	var g errgroup.Group
	for i, src := range r.sources {
		g.Go(func() error {
			results, err := safeQuery(ctx, src, qc)
			perSource[i] = sourceResult{results, err}
			return nil
		})
	}
	_ = g.Wait()

	for i, sr := range perSource {
		if sr.err != nil {
			name := r.sources[i].Name()
			r.logger.Warn("source query failed", "source", name, "error", sr.err)
			failures = append(failures, fmt.Sprintf("%s: %v", name, sr.err))
			continue
		}
		merged = append(merged, sr.results...)
	}
	return merged, failures
}

func safeQuery(ctx context.Context, src sources.Source, qc types.QueryContext) (results []types.Candidate, err error) {
	defer func() {
		if p := recover(); p != nil {
			results, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	return src.Query(ctx, qc)
}
