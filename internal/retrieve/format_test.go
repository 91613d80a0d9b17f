// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/code-rag/internal/sources"
	"github.com/pdiddy/code-rag/pkg/types"
)

func TestFormatResults_Empty(t *testing.T) {
	assert.Equal(t, "No relevant information found.", FormatResults(nil))
}

func TestFormatResults(t *testing.T) {
	got := FormatResults([]types.Candidate{
		{Title: "Fix KeyError", Content: "use .get", Platform: types.PlatformStackOverflow, Votes: 42},
		{Title: "requests retry", Content: "Session()", Platform: types.PlatformGitHub, Repository: "psf/requests"},
		{Content: "plain", Platform: types.PlatformGitHub},
		{Title: "Docs", Source: "docs.python.org"},
	})
	want := "### Fix KeyError\n\n**Source**: Stack Overflow (42 votes)\n\nuse .get\n\n" +
		"\n### requests retry\n\n**Source**: GitHub - psf/requests\n\nSession()\n\n" +
		"\n### Result 3\n\n**Source**: GitHub\n\nplain\n\n" +
		"\n### Docs\n\n**Source**: docs.python.org\n\nNo content available.\n\n"
	assert.Equal(t, want, got)
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	out := Output{
		Request: Request{Type: types.QueryAPIDoc, Query: "q", MaxResults: 3},
		Results: []types.Candidate{{Title: "t", URL: "u", Content: "c", Source: "s"}},
	}
	require.NoError(t, FormatJSON(out, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "request")
	assert.Len(t, decoded["results"], 1)
	assert.NotContains(t, decoded, "cached")
}

func TestExecute_InvalidQueryType(t *testing.T) {
	r := New(nil)
	got, err := r.Execute(context.Background(), ToolRequest{QueryType: "tutorial", Query: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Invalid query_type: tutorial. Must be one of: api_doc, error_solution, implementation.", got)
}

func TestExecute_APIDocFromDottedQuery(t *testing.T) {
	src := &stubSource{name: "s", results: []types.Candidate{{Title: "merge", Content: "c", Source: "docs"}}}
	r := New([]sources.Source{src})

	got, err := r.Execute(context.Background(), ToolRequest{QueryType: "api_doc", Query: "pandas.DataFrame.merge"})
	require.NoError(t, err)
	assert.Equal(t, "pandas", src.last().Library)
	assert.Equal(t, "merge", src.last().Function)
	assert.Contains(t, got, "### merge")
}

func TestExecute_APIDocExplicitFields(t *testing.T) {
	src := &stubSource{name: "s"}
	r := New([]sources.Source{src})

	got, err := r.Execute(context.Background(), ToolRequest{QueryType: "api_doc", Query: "ignored", Library: "numpy", Function: "arange"})
	require.NoError(t, err)
	assert.Equal(t, "numpy arange example", src.last().Query)
	assert.Equal(t, NoResults, got)
}

func TestExecute_ErrorAndImplementation(t *testing.T) {
	src := &stubSource{name: "s"}
	r := New([]sources.Source{src})

	_, err := r.Execute(context.Background(), ToolRequest{QueryType: "error_solution", Query: "TypeError: bad operand"})
	require.NoError(t, err)
	assert.Equal(t, "TypeError: bad operand", src.last().Query)

	_, err = r.Execute(context.Background(), ToolRequest{QueryType: "implementation", Query: "debounce", Language: "javascript"})
	require.NoError(t, err)
	assert.Equal(t, "javascript", src.last().Language)
}

func TestQueryFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merge.yaml")
	out := Output{
		Request: Request{Type: types.QueryAPIDoc, Query: "pandas merge example", Library: "pandas", Function: "merge", MaxResults: 3},
		Results: []types.Candidate{
			{Title: "merge", URL: "https://docs.example.org", Content: "c", Source: "docs.example.org"},
			{Title: "so", URL: "https://stackoverflow.com/q/1", Content: "d", Source: "stackoverflow.com", Platform: types.PlatformStackOverflow, Votes: 7},
		},
		SourceErrors: []string{"github: timeout"},
	}
	require.NoError(t, WriteQueryFile(path, out))

	qf, err := ReadQueryFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, qf.Summary.Total)
	assert.False(t, qf.Summary.Timestamp.IsZero())
	assert.Equal(t, out, qf.Output())
}

func TestReadQueryFile_Missing(t *testing.T) {
	_, err := ReadQueryFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading query file")
}
