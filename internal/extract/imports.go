// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/pdiddy/code-rag/pkg/types"
)

// The from-import pattern is line based: a parenthesized member list spanning
// several lines yields a record without members. The structural parse covers
// that form.
var (
	pyImportRe     = regexp.MustCompile(`^\s*import\s+([^\s,]+)(?:\s+as\s+([^\s,]+))?`)
	pyFromImportRe = regexp.MustCompile(`^\s*from\s+(\S+)\s+import\s+(.+)$`)
	jsImportRe     = regexp.MustCompile(`(?m)^\s*import\s+(?:\{([^}]+)\}|([^\s{]+))\s+from\s+['"]([^'"]+)['"]`)
	memberRe       = regexp.MustCompile(`(\S+)(?:\s+as\s+(\S+))?`)
)

// ExtractImports lists the import statements in text in appearance order.
// Python is parsed structurally when possible; JavaScript and TypeScript use
// line patterns; any other language yields nil.
func (e *Extractor) ExtractImports(ctx context.Context, text, language string) []types.ImportRecord {
	switch normalizeLanguage(language) {
	case "python":
		if e.structural {
			records, err := parsePythonImports(ctx, []byte(text))
			if err == nil {
				return records
			}
			e.logger.Warn("structural parse failed, using pattern fallback", "language", "python", "error", err)
		}
		return pythonImportsByPattern(text)
	case "javascript", "typescript":
		return jsImportsByPattern(text)
	default:
		return nil
	}
}

// pythonImportsByPattern scans line by line so plain and from-imports keep
// their relative order.
func pythonImportsByPattern(text string) []types.ImportRecord {
	var records []types.ImportRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			records = append(records, types.ImportRecord{
				Kind:         types.ImportPlain,
				Module:       m[1],
				Alias:        m[2],
				OriginalText: strings.TrimSpace(m[0]),
			})
			continue
		}
		if m := pyFromImportRe.FindStringSubmatch(line); m != nil {
			records = append(records, types.ImportRecord{
				Kind:         types.ImportFrom,
				Module:       m[1],
				Members:      splitMembers(strings.Trim(strings.TrimSpace(m[2]), "()")),
				OriginalText: strings.TrimSpace(m[0]),
			})
		}
	}
	return records
}

func jsImportsByPattern(text string) []types.ImportRecord {
	var records []types.ImportRecord
	for _, m := range jsImportRe.FindAllStringSubmatch(text, -1) {
		original := strings.TrimSpace(m[0])
		if m[1] != "" {
			records = append(records, types.ImportRecord{
				Kind:         types.ImportNamed,
				Module:       m[3],
				Members:      splitMembers(m[1]),
				OriginalText: original,
			})
		}
		if m[2] != "" {
			records = append(records, types.ImportRecord{
				Kind:         types.ImportDefault,
				Module:       m[3],
				Alias:        m[2],
				OriginalText: original,
			})
		}
	}
	return records
}

// splitMembers turns "a, b as c" into one member per comma-separated name.
func splitMembers(list string) []types.ImportMember {
	var members []types.ImportMember
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		m := memberRe.FindStringSubmatch(item)
		if m == nil {
			continue
		}
		members = append(members, types.ImportMember{Name: m[1], Alias: m[2]})
	}
	return members
}
