// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources implements the retrieval channels queried by the
// orchestrator. Each channel rewrites the query for its site and delegates
// to the shared WebSearch leaf, which is the only component that fetches.
package sources

import (
	"context"

	"github.com/pdiddy/code-rag/pkg/types"
)

// Source is one retrieval channel. Implementations return an empty slice and
// log a warning when required query fields are missing; an error means the
// whole channel failed.
type Source interface {
	Name() string
	Query(ctx context.Context, qc types.QueryContext) ([]types.Candidate, error)
}

// Channel names reported by Name.
const (
	NameWeb           = "web"
	NameOfficialDocs  = "official_docs"
	NameStackOverflow = "stackoverflow"
	NameGitHub        = "github"
)
