// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import "github.com/pdiddy/code-rag/pkg/types"

func apiDocKey(library, function string) string {
	return "api_doc:" + library + ":" + function
}

// cached returns a copy of the stored results so callers cannot alter the
// cache through the returned slice.
func (r *Retriever) cached(key string) ([]types.Candidate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	results, ok := r.cache[key]
	if !ok {
		return nil, false
	}
	out := make([]types.Candidate, len(results))
	copy(out, results)
	return out, true
}

func (r *Retriever) store(key string, results []types.Candidate) {
	stored := make([]types.Candidate, len(results))
	copy(stored, results)
	r.mu.Lock()
	r.cache[key] = stored
	r.mu.Unlock()
}

// CacheLen returns the number of cached lookups.
func (r *Retriever) CacheLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}
