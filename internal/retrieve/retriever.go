// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieve orchestrates a retrieval: it builds the query, fans it out
// to every source at once, ranks the merged candidates and caches API
// documentation lookups for the life of the Retriever.
package retrieve

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pdiddy/code-rag/internal/applog"
	"github.com/pdiddy/code-rag/internal/extract"
	"github.com/pdiddy/code-rag/internal/query"
	"github.com/pdiddy/code-rag/internal/rank"
	"github.com/pdiddy/code-rag/internal/sources"
	"github.com/pdiddy/code-rag/pkg/types"
)

// DefaultLanguage is assumed for implementation lookups without a language.
const DefaultLanguage = "python"

// Retriever owns the sources, the extractor and the result cache.
type Retriever struct {
	sources   []sources.Source
	extractor *extract.Extractor
	logger    *slog.Logger
	versions  map[string]string

	mu    sync.Mutex
	cache map[string][]types.Candidate
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets the logger for source failures and cache activity.
func WithLogger(l *slog.Logger) Option {
	return func(r *Retriever) { r.logger = l }
}

// WithExtractor replaces the default extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(r *Retriever) { r.extractor = e }
}

// WithLibraryVersions enables the outdated-version filter after ranking.
func WithLibraryVersions(versions map[string]string) Option {
	return func(r *Retriever) { r.versions = versions }
}

// New returns a Retriever over srcs. Sources are queried concurrently and
// their results merged in the order given here.
func New(srcs []sources.Source, opts ...Option) *Retriever {
	r := &Retriever{
		sources: srcs,
		cache:   make(map[string][]types.Candidate),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = applog.OrDefault(r.logger)
	if r.extractor == nil {
		r.extractor = extract.New(extract.WithLogger(r.logger))
	}
	return r
}

// DefaultSources returns the official docs, Stack Overflow and GitHub
// channels, all searching through web.
func DefaultSources(web sources.Source, logger *slog.Logger) []sources.Source {
	return []sources.Source{
		sources.NewOfficialDocs(web, logger),
		&sources.StackOverflow{Web: web, Logger: logger},
		&sources.GitHub{Web: web, Logger: logger},
	}
}

// Extractor returns the extractor used for error and import parsing.
func (r *Retriever) Extractor() *extract.Extractor { return r.extractor }

// Request records what a retrieval was asked for.
type Request struct {
	Type         types.QueryType     `json:"type" yaml:"type"`
	Query        string              `json:"query" yaml:"query"`
	Library      string              `json:"library,omitempty" yaml:"library,omitempty"`
	Function     string              `json:"function,omitempty" yaml:"function,omitempty"`
	Context      string              `json:"context,omitempty" yaml:"context,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	Error        *types.ErrorContext `json:"error,omitempty" yaml:"error,omitempty"`
	Task         string              `json:"task,omitempty" yaml:"task,omitempty"`
	Language     string              `json:"language,omitempty" yaml:"language,omitempty"`
	Libraries    []string            `json:"libraries,omitempty" yaml:"libraries,omitempty"`
	MaxResults   int                 `json:"max_results" yaml:"max_results"`
}

// Output holds the ranked results of one retrieval.
type Output struct {
	Request      Request           `json:"request"`
	Results      []types.Candidate `json:"results"`
	SourceErrors []string          `json:"source_errors,omitempty"`
	Cached       bool              `json:"cached,omitempty"`
}

// RetrieveAPIDocumentation looks up usage documentation for library.function.
// Results are cached per library and function; a cache hit skips the
// sources and the ranker.
func (r *Retriever) RetrieveAPIDocumentation(ctx context.Context, library, function, extra string, maxResults int) (Output, error) {
	maxResults = normalizeMax(maxResults)
	req := Request{
		Type:       types.QueryAPIDoc,
		Query:      query.APIUsage(library, function, extra),
		Library:    library,
		Function:   function,
		Context:    extra,
		MaxResults: maxResults,
	}

	key := apiDocKey(library, function)
	if cached, ok := r.cached(key); ok {
		r.logger.Debug("cache hit", "key", key, "results", len(cached))
		return Output{Request: req, Results: cached, Cached: true}, nil
	}

	out, err := r.run(ctx, req, types.QueryContext{
		Query:      req.Query,
		Type:       types.QueryAPIDoc,
		Library:    library,
		Function:   function,
		MaxResults: maxResults,
	}, rank.Criteria{Type: types.QueryAPIDoc, Library: library, Function: function})
	if err != nil {
		return out, err
	}
	r.store(key, out.Results)
	return out, nil
}

// RetrieveErrorSolutions parses message and searches for fixes to the error
// it describes.
func (r *Retriever) RetrieveErrorSolutions(ctx context.Context, message string, maxResults int) (Output, error) {
	maxResults = normalizeMax(maxResults)
	ec := r.extractor.ExtractErrorContext(message)

	text := ec.ErrorMessage
	if text == "" {
		text = strings.TrimSpace(message)
	}
	req := Request{
		Type:         types.QueryErrorSolution,
		Query:        query.ErrorResolution(ec.ErrorType, text),
		ErrorMessage: message,
		Error:        &ec,
		MaxResults:   maxResults,
	}

	return r.run(ctx, req, types.QueryContext{
		Query:      req.Query,
		Type:       types.QueryErrorSolution,
		ErrorType:  ec.ErrorType,
		MaxResults: maxResults,
	}, rank.Criteria{Type: types.QueryErrorSolution, ErrorType: ec.ErrorType, Error: &ec})
}

// RetrieveImplementationExamples searches for examples of task. Modules
// imported by plain import statements in fileContent become preferred
// libraries in the query.
func (r *Retriever) RetrieveImplementationExamples(ctx context.Context, task, fileContent, language string, maxResults int) (Output, error) {
	maxResults = normalizeMax(maxResults)
	if language == "" {
		language = DefaultLanguage
	}

	var libraries []string
	for _, imp := range r.extractor.ExtractImports(ctx, fileContent, language) {
		if imp.Kind == types.ImportPlain {
			libraries = append(libraries, imp.Module)
		}
	}

	req := Request{
		Type:       types.QueryImplementation,
		Query:      query.Implementation(task, libraries),
		Task:       task,
		Language:   language,
		Libraries:  libraries,
		MaxResults: maxResults,
	}
	return r.run(ctx, req, types.QueryContext{
		Query:      req.Query,
		Type:       types.QueryImplementation,
		Language:   language,
		MaxResults: maxResults,
	}, rank.Criteria{Type: types.QueryImplementation})
}

// run fans qc out, ranks the merged candidates and applies the version
// filter. The returned error is non-nil only when ctx ended.
func (r *Retriever) run(ctx context.Context, req Request, qc types.QueryContext, crit rank.Criteria) (Output, error) {
	merged, failures := r.querySources(ctx, qc)
	if err := ctx.Err(); err != nil {
		return Output{Request: req, SourceErrors: failures}, err
	}

	results := rank.Rank(merged, crit)
	if len(r.versions) > 0 {
		before := len(results)
		results = rank.FilterOutdated(results, r.versions)
		if dropped := before - len(results); dropped > 0 {
			r.logger.Debug("dropped outdated results", "count", dropped)
		}
	}
	r.logger.Info("retrieval complete",
		"type", string(req.Type), "query", req.Query,
		"results", len(results), "failed_sources", len(failures))
	return Output{Request: req, Results: results, SourceErrors: failures}, nil
}

func normalizeMax(n int) int {
	if n <= 0 {
		return types.DefaultMaxResults
	}
	return n
}
