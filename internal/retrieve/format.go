// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/code-rag/pkg/types"
)

// NoResults is the report for an empty result set.
const NoResults = "No relevant information found."

// FormatResults renders candidates as a markdown report. Stack Overflow
// results show their vote count and GitHub results their repository.
func FormatResults(candidates []types.Candidate) string {
	if len(candidates) == 0 {
		return NoResults
	}

	parts := make([]string, len(candidates))
	for i, c := range candidates {
		var b strings.Builder
		title := c.Title
		if title == "" {
			title = fmt.Sprintf("Result %d", i+1)
		}
		fmt.Fprintf(&b, "### %s\n\n", title)
		fmt.Fprintf(&b, "**Source**: %s\n\n", sourceLine(c))

		content := c.Content
		if content == "" {
			content = "No content available."
		}
		b.WriteString(content)
		b.WriteString("\n\n")
		parts[i] = b.String()
	}
	return strings.Join(parts, "\n")
}

func sourceLine(c types.Candidate) string {
	switch c.Platform {
	case types.PlatformStackOverflow:
		return fmt.Sprintf("Stack Overflow (%d votes)", c.Votes)
	case types.PlatformGitHub:
		if c.Repository != "" {
			return "GitHub - " + c.Repository
		}
		return "GitHub"
	}
	if c.Source == "" {
		return "Unknown source"
	}
	return c.Source
}

// FormatJSON writes out as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
