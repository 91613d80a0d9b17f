// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls structured facts out of source text and error output:
// imports, call sites, error context, and the coarse intent of a free-text
// request. Extraction is best effort and never returns an error; when the
// structural Python parser fails the pattern-based path is used instead.
package extract

import (
	"log/slog"
	"strings"

	"github.com/pdiddy/code-rag/internal/applog"
)

// Extractor holds the logger and parser settings shared by all extraction
// operations. The zero value is not usable; call New.
type Extractor struct {
	logger     *slog.Logger
	structural bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used to report parser fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// WithoutStructuralParse disables the tree-sitter path so Python imports are
// always read with the line patterns.
func WithoutStructuralParse() Option {
	return func(e *Extractor) { e.structural = false }
}

// New returns an Extractor with the structural Python parser enabled.
func New(opts ...Option) *Extractor {
	e := &Extractor{structural: true}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = applog.OrDefault(e.logger)
	return e
}

func normalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
