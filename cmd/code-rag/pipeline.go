// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/pdiddy/code-rag/internal/extract"
	"github.com/pdiddy/code-rag/internal/fetch"
	"github.com/pdiddy/code-rag/internal/pagestore"
	"github.com/pdiddy/code-rag/internal/retrieve"
	"github.com/pdiddy/code-rag/internal/sources"
	"github.com/pdiddy/code-rag/pkg/types"
)

// buildRetriever wires the fetch chain (HTTP, optional page cache, memo)
// under the web search leaf and the three retrieval channels. The returned
// cleanup closes the page cache.
func buildRetriever(cfg types.Config) (*retrieve.Retriever, func(), error) {
	var f fetch.Fetcher = fetch.NewHTTPFetcher(cfg.Fetch)
	cleanup := func() {}

	if path := cfg.Fetch.PageCache.Path; path != "" {
		store, err := pagestore.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening page cache: %w", err)
		}
		f = store.Fetcher(f, cfg.Fetch.PageCache.MaxAge, logger)
		cleanup = func() { store.Close() }
	}

	if cfg.Fetch.MemoSize > 0 {
		memo, err := fetch.NewMemo(f, cfg.Fetch.MemoSize)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		f = memo
	}

	web := sources.NewWebSearch(f, cfg.Search, logger)
	r := retrieve.New(
		retrieve.DefaultSources(web, logger),
		retrieve.WithLogger(logger),
		retrieve.WithExtractor(extract.New(extract.WithLogger(logger))),
		retrieve.WithLibraryVersions(cfg.Retrieval.LibraryVersions),
	)
	return r, cleanup, nil
}
