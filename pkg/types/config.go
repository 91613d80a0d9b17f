// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for the page fetcher.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every fetch.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for the injected fetch capability.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxBytes caps how much of a response body is read (default 2 MiB).
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes" mapstructure:"max_bytes"`

	// RateLimitRetries is how many times the fetcher backs off on HTTP 429
	// before giving up. Zero disables backoff.
	RateLimitRetries int `json:"rate_limit_retries" yaml:"rate_limit_retries" mapstructure:"rate_limit_retries"`

	// MemoSize is the number of pages kept in the in-memory memo. Zero
	// disables the memo.
	MemoSize int `json:"memo_size" yaml:"memo_size" mapstructure:"memo_size"`

	// PageCache configures the optional on-disk page cache.
	PageCache PageCacheConfig `json:"page_cache" yaml:"page_cache" mapstructure:"page_cache"`
}

// PageCacheConfig configures the SQLite page cache. An empty Path disables it.
type PageCacheConfig struct {
	Path   string        `json:"path" yaml:"path" mapstructure:"path"`
	MaxAge time.Duration `json:"max_age" yaml:"max_age" mapstructure:"max_age"`
}

// SearchConfig holds settings for the web search leaf.
type SearchConfig struct {
	// SearchURL is the search endpoint; the escaped query is appended as
	// the q parameter.
	SearchURL string `json:"search_url" yaml:"search_url" mapstructure:"search_url"`

	// MaxResults is the default number of links followed per source (default 3).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// AddSource annotates entries with the caller location.
	AddSource bool `json:"add_source" yaml:"add_source" mapstructure:"add_source"`
}

// RetrievalConfig holds orchestrator settings.
type RetrievalConfig struct {
	// LibraryVersions maps library names to their current version. When set,
	// results mentioning a significantly older version are dropped.
	LibraryVersions map[string]string `json:"library_versions,omitempty" yaml:"library_versions,omitempty" mapstructure:"library_versions"`
}

// Config groups all settings read from code-rag.yaml and the environment.
type Config struct {
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Search    SearchConfig    `json:"search" yaml:"search" mapstructure:"search"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
	Retrieval RetrievalConfig `json:"retrieval" yaml:"retrieval" mapstructure:"retrieval"`
}

// Defaults used when a setting is left empty.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultUserAgent  = "code-rag/0.1"
	DefaultMaxBytes   = 2 << 20
	DefaultMaxResults = 3
	DefaultSearchURL  = "https://html.duckduckgo.com/html/"
)

// WithDefaults returns a copy of c with empty fields filled in.
func (c Config) WithDefaults() Config {
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = DefaultTimeout
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = DefaultUserAgent
	}
	if c.Fetch.MaxBytes <= 0 {
		c.Fetch.MaxBytes = DefaultMaxBytes
	}
	if c.Search.SearchURL == "" {
		c.Search.SearchURL = DefaultSearchURL
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = DefaultMaxResults
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	return c
}
