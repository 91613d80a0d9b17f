// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the code-rag pipeline:
// retrieved candidates, query contexts, extracted code facts, and the
// configuration consumed by the CLI and tool surfaces.
package types

// QueryType selects which kind of reference material a retrieval looks for.
type QueryType string

const (
	QueryAPIDoc         QueryType = "api_doc"
	QueryErrorSolution  QueryType = "error_solution"
	QueryImplementation QueryType = "implementation"
)

// QueryTypes lists the accepted query types in the order they are presented
// to callers.
var QueryTypes = []QueryType{QueryAPIDoc, QueryErrorSolution, QueryImplementation}

// Valid reports whether t is one of the known query types.
func (t QueryType) Valid() bool {
	for _, known := range QueryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Platform names attached by the platform-specific sources.
const (
	PlatformStackOverflow = "Stack Overflow"
	PlatformGitHub        = "GitHub"
)

// Candidate is a retrieved document. Candidates returned from the pipeline
// always carry fetched Content; links whose page could not be fetched are
// dropped before a Candidate is built. URL identifies a candidate within one
// result set, but the same URL may be returned by more than one source.
type Candidate struct {
	// Title is the link text from the search results page.
	Title string `json:"title" yaml:"title"`

	// Content holds the most relevant paragraphs extracted from the page.
	Content string `json:"content" yaml:"content"`

	// URL is the page address.
	URL string `json:"url" yaml:"url"`

	// Source is the host the page was served from (e.g. "docs.python.org").
	Source string `json:"source" yaml:"source"`

	// Platform is set by platform-specific sources ("Stack Overflow", "GitHub").
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`

	// Votes is the answer vote count scraped from Stack Overflow pages.
	Votes int `json:"votes,omitempty" yaml:"votes,omitempty"`

	// Repository is the owner/repo pair for GitHub pages.
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// QueryContext is the immutable description of one retrieval handed to every
// source. Sources that need a different query derive a modified copy.
type QueryContext struct {
	Query      string    `json:"query" yaml:"query"`
	Type       QueryType `json:"type" yaml:"type"`
	Library    string    `json:"library,omitempty" yaml:"library,omitempty"`
	Function   string    `json:"function,omitempty" yaml:"function,omitempty"`
	ErrorType  string    `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	Language   string    `json:"language,omitempty" yaml:"language,omitempty"`
	MaxResults int       `json:"max_results" yaml:"max_results"`
}

// WithQuery returns a copy of c with Query replaced.
func (c QueryContext) WithQuery(q string) QueryContext {
	c.Query = q
	return c
}
