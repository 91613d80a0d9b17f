// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders retrieval candidates with a fixed keyword heuristic and
// drops results that discuss outdated library versions.
package rank

import (
	"sort"
	"strings"

	"github.com/pdiddy/code-rag/pkg/types"
)

// Criteria is what the score is computed against.
type Criteria struct {
	Type      types.QueryType
	Library   string
	Function  string
	ErrorType string

	// Error is the parsed error for error_solution queries. Its ErrorType is
	// used when ErrorType is empty.
	Error *types.ErrorContext
}

func (c Criteria) errorType() string {
	if c.ErrorType != "" {
		return c.ErrorType
	}
	if c.Error != nil {
		return c.Error.ErrorType
	}
	return ""
}

// Rank returns candidates ordered by Score, highest first. Equal scores keep
// their input order. The input slice is not modified.
func Rank(candidates []types.Candidate, c Criteria) []types.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	type scored struct {
		score float64
		cand  types.Candidate
	}
	items := make([]scored, len(candidates))
	for i, cand := range candidates {
		items[i] = scored{Score(cand, c), cand}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]types.Candidate, len(items))
	for i, it := range items {
		out[i] = it.cand
	}
	return out
}

// Score computes the relevance of one candidate. The base score is 1.0.
func Score(cand types.Candidate, c Criteria) float64 {
	title := strings.ToLower(cand.Title)
	content := strings.ToLower(cand.Content)
	url := strings.ToLower(cand.URL)

	score := 1.0
	if content == "" {
		score -= 0.5
	}

	hasBlock := hasCodeBlock(content)
	hasTokens := hasCodeTokens(content)

	switch c.Type {
	case types.QueryAPIDoc:
		score += when(strings.Contains(url, "docs.") || strings.Contains(url, "documentation"), 1.0)
		if lib := strings.ToLower(c.Library); lib != "" {
			score += when(strings.Contains(title, lib), 0.5)
			score += when(strings.Contains(content, lib), 0.3)
		}
		if fn := strings.ToLower(c.Function); fn != "" {
			score += when(strings.Contains(title, fn), 0.7)
			score += when(strings.Contains(content, fn), 0.4)
		}
		score += when(containsAny(title, "example", "usage"), 0.5)
		score += when(containsAny(content, "example", "usage"), 0.3)
		switch {
		case hasBlock:
			score += 0.8
		case hasTokens:
			score += 0.5
		}

	case types.QueryErrorSolution:
		score += when(strings.Contains(url, "stackoverflow.com"), 0.8)
		if et := strings.ToLower(c.errorType()); et != "" {
			score += when(strings.Contains(title, et), 1.0)
			score += when(strings.Contains(content, et), 0.6)
		}
		score += when(containsAny(title, "solution", "fix", "solved"), 0.7)
		score += when(containsAny(content, "solution", "fix", "solved"), 0.4)
		score += when(hasBlock, 0.6)

	case types.QueryImplementation:
		score += when(strings.Contains(url, "github.com"), 0.7)
		score += when(containsAny(title, "implementation", "example", "tutorial"), 0.8)
		score += when(containsAny(content, "implementation", "example", "tutorial"), 0.5)
		switch {
		case hasBlock:
			score += 1.0
		case hasTokens:
			score += 0.7
		}
	}

	if cand.Platform == types.PlatformStackOverflow {
		score += voteBoost(cand.Votes)
	}
	return score
}

func voteBoost(votes int) float64 {
	switch {
	case votes > 100:
		return 0.8
	case votes > 50:
		return 0.5
	case votes > 10:
		return 0.3
	}
	return 0
}

func hasCodeBlock(lower string) bool {
	return strings.Contains(lower, "```") || strings.Contains(lower, "<code>")
}

func hasCodeTokens(lower string) bool {
	return containsAny(lower, "def ", "function ", "class ")
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func when(cond bool, v float64) float64 {
	if cond {
		return v
	}
	return 0
}
