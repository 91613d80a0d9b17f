// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/code-rag/pkg/types"
)

func urls(cands []types.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.URL
	}
	return out
}

func TestScore_Base(t *testing.T) {
	assert.InDelta(t, 1.0, Score(types.Candidate{Content: "text"}, Criteria{}), 1e-9)
	assert.InDelta(t, 0.5, Score(types.Candidate{}, Criteria{}), 1e-9)
}

func TestScore_APIDoc(t *testing.T) {
	c := types.Candidate{
		Title:   "pandas read_csv usage",
		URL:     "https://docs.example.org/pandas",
		Content: "pandas.read_csv example:\n```\ndf = pd.read_csv(path)\n```",
	}
	got := Score(c, Criteria{Type: types.QueryAPIDoc, Library: "Pandas", Function: "read_csv"})
	// 1.0 base + 1.0 docs + 0.5/0.3 library + 0.7/0.4 function + 0.5/0.3 example + 0.8 block
	assert.InDelta(t, 5.5, got, 1e-9)
}

func TestScore_APIDocBareCodeTokens(t *testing.T) {
	c := types.Candidate{URL: "https://blog.example.com", Content: "def helper(): pass"}
	assert.InDelta(t, 1.5, Score(c, Criteria{Type: types.QueryAPIDoc}), 1e-9)
}

func TestScore_ErrorSolution(t *testing.T) {
	c := types.Candidate{
		Title:   "KeyError when indexing, solved",
		URL:     "https://stackoverflow.com/questions/1",
		Content: "The keyerror comes from a missing column. Fix: <code>df.get('a')</code>",
	}
	crit := Criteria{Type: types.QueryErrorSolution, Error: &types.ErrorContext{ErrorType: "KeyError"}}
	// 1.0 + 0.8 so + 1.0/0.6 error type + 0.7/0.4 fix words + 0.6 block
	assert.InDelta(t, 5.1, Score(c, crit), 1e-9)
}

func TestScore_ErrorTypeFieldWins(t *testing.T) {
	c := types.Candidate{Title: "ValueError", Content: "x"}
	crit := Criteria{Type: types.QueryErrorSolution, ErrorType: "ValueError", Error: &types.ErrorContext{ErrorType: "KeyError"}}
	assert.InDelta(t, 2.0, Score(c, crit), 1e-9)
}

func TestScore_Implementation(t *testing.T) {
	c := types.Candidate{
		Title:   "LRU cache tutorial",
		URL:     "https://github.com/a/b",
		Content: "class LRU: an example",
	}
	// 1.0 + 0.7 github + 0.8/0.5 keywords + 0.7 bare tokens
	assert.InDelta(t, 3.7, Score(c, Criteria{Type: types.QueryImplementation}), 1e-9)
}

func TestScore_VoteBoost(t *testing.T) {
	tests := []struct {
		votes int
		want  float64
	}{
		{0, 1.0}, {10, 1.0}, {11, 1.3}, {50, 1.3}, {51, 1.5}, {100, 1.5}, {101, 1.8},
	}
	for _, tt := range tests {
		c := types.Candidate{Content: "x", Platform: types.PlatformStackOverflow, Votes: tt.votes}
		assert.InDelta(t, tt.want, Score(c, Criteria{}), 1e-9, "votes=%d", tt.votes)
	}

	notSO := types.Candidate{Content: "x", Platform: types.PlatformGitHub, Votes: 500}
	assert.InDelta(t, 1.0, Score(notSO, Criteria{}), 1e-9)
}

func TestRank_FunctionInTitleRanksHigher(t *testing.T) {
	plain := types.Candidate{
		Title:   "pandas reference",
		URL:     "https://blog.example.com/pandas",
		Content: "notes on loading data",
	}
	named := plain
	named.Title = "pandas read_csv reference"
	named.URL = "https://blog.example.com/pandas-read-csv"
	c := Criteria{Type: types.QueryAPIDoc, Library: "pandas", Function: "read_csv"}

	assert.Greater(t, Score(named, c), Score(plain, c))
	ranked := Rank([]types.Candidate{plain, named}, c)
	assert.Equal(t, []string{named.URL, plain.URL}, urls(ranked))
}

func TestRank_OrdersByScoreAndKeepsTies(t *testing.T) {
	in := []types.Candidate{
		{URL: "a", Content: "plain"},
		{URL: "b", Content: "```code```"},
		{URL: "c", Content: "plain"},
		{URL: "d"},
	}
	got := Rank(in, Criteria{Type: types.QueryImplementation})
	assert.Equal(t, []string{"b", "a", "c", "d"}, urls(got))
	assert.Equal(t, "a", in[0].URL, "input is not reordered")
}

func TestRank_Idempotent(t *testing.T) {
	in := []types.Candidate{
		{URL: "1", Content: "fix"},
		{URL: "2", Title: "solution", Content: "fix ```x```"},
		{URL: "https://stackoverflow.com/3", Content: "fix"},
	}
	crit := Criteria{Type: types.QueryErrorSolution}
	once := Rank(in, crit)
	assert.Equal(t, once, Rank(once, crit))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, Criteria{}))
}

func TestFilterOutdated(t *testing.T) {
	in := []types.Candidate{
		{URL: "same-major", Content: "works with numpy 1.0 and later"},
		{URL: "old-major", Content: "tested on numpy 0.9"},
		{URL: "unparsable-mention", Content: "numpy version 2.x"},
		{URL: "no-mention", Content: "just python"},
		{URL: "other-lib-old", Content: "Pandas v0.20 style, numpy 2.0.0 fine"},
	}
	got := FilterOutdated(in, map[string]string{"numpy": "2.0.0", "pandas": "2.2"})
	assert.Equal(t, []string{"same-major", "unparsable-mention", "no-mention"}, urls(got))
}

func TestFilterOutdated_FailsOpen(t *testing.T) {
	in := []types.Candidate{{URL: "a", Content: "numpy 0.1"}}
	assert.Equal(t, in, FilterOutdated(in, map[string]string{"numpy": "latest"}))
	assert.Equal(t, in, FilterOutdated(in, nil))
}

func TestIsOutdated(t *testing.T) {
	tests := []struct {
		mentioned, current string
		want               bool
	}{
		{"1.0", "2.0.0", false},
		{"0.9", "2.0.0", true},
		{"2.2", "2.5", false},
		{"2.1", "2.5.1", true},
		{"3.0", "2.0", false},
	}
	for _, tt := range tests {
		m, err := semver.NewVersion(tt.mentioned)
		require.NoError(t, err)
		c, err := semver.NewVersion(tt.current)
		require.NoError(t, err)
		assert.Equal(t, tt.want, IsOutdated(m, c), "%s vs %s", tt.mentioned, tt.current)
	}
}
