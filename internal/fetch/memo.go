// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Memo remembers successful fetches in a bounded LRU so that several sources
// following the same link in one process fetch it once. Failures are not
// remembered.
type Memo struct {
	next  Fetcher
	pages *lru.Cache[string, string]
}

// NewMemo wraps next with an LRU of the given size.
func NewMemo(next Fetcher, size int) (*Memo, error) {
	pages, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating page memo: %w", err)
	}
	return &Memo{next: next, pages: pages}, nil
}

// Fetch returns a remembered page or delegates to the wrapped fetcher.
func (m *Memo) Fetch(ctx context.Context, url string) (string, error) {
	if page, ok := m.pages.Get(url); ok {
		return page, nil
	}
	page, err := m.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	m.pages.Add(url, page)
	return page, nil
}

// Len reports the number of remembered pages.
func (m *Memo) Len() int { return m.pages.Len() }
