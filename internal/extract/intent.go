// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"

	"github.com/pdiddy/code-rag/pkg/types"
)

type keywordPattern struct {
	name string
	re   *regexp.Regexp
}

// Order matters: the first matching language and action win.
var (
	languagePatterns = []keywordPattern{
		{"python", regexp.MustCompile(`(?i)\b(?:python|py|pip|django|flask|pandas|numpy|tensorflow)\b`)},
		{"javascript", regexp.MustCompile(`(?i)\b(?:javascript|js|node|npm|react|vue|angular)\b`)},
		{"typescript", regexp.MustCompile(`(?i)\b(?:typescript|ts|tsx)\b`)},
		{"java", regexp.MustCompile(`(?i)\b(?:java|gradle|maven|spring)\b`)},
		{"c#", regexp.MustCompile(`(?i)(?:\bcsharp\b|\bc#|\.net\b)`)},
		{"ruby", regexp.MustCompile(`(?i)\b(?:ruby|rails|gem)\b`)},
		{"go", regexp.MustCompile(`(?i)\b(?:go|golang)\b`)},
		{"rust", regexp.MustCompile(`(?i)\b(?:rust|cargo)\b`)},
		{"php", regexp.MustCompile(`(?i)\b(?:php|composer|laravel|symfony)\b`)},
	}

	actionPatterns = []keywordPattern{
		{"create", regexp.MustCompile(`(?i)\b(?:create|make|build|implement|write)\b`)},
		{"fix", regexp.MustCompile(`(?i)\b(?:fix|solve|resolve|debug|correct)\b`)},
		{"optimize", regexp.MustCompile(`(?i)\b(?:optimize|improve|speed up|enhance)\b`)},
		{"explain", regexp.MustCompile(`(?i)\b(?:explain|understand|clarify|describe)\b`)},
		{"test", regexp.MustCompile(`(?i)\b(?:test|verify|validate|check)\b`)},
	}

	knownLibraries = []string{
		"react", "vue", "angular", "django", "flask", "express",
		"pandas", "numpy", "tensorflow", "pytorch", "scikit-learn",
		"requests", "axios", "jquery", "bootstrap", "tailwind",
		"spring", "hibernate", "laravel", "symfony", "rails",
	}

	libraryPatterns = compileLibraryPatterns(knownLibraries)
)

func compileLibraryPatterns(names []string) []keywordPattern {
	patterns := make([]keywordPattern, len(names))
	for i, name := range names {
		patterns[i] = keywordPattern{name, regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)}
	}
	return patterns
}

// ExtractIntent guesses the language, the action and every known library
// mentioned in a free-text request.
func (e *Extractor) ExtractIntent(query string) types.Intent {
	intent := types.Intent{Query: query, Libraries: []string{}}
	intent.Language = firstMatch(languagePatterns, query)
	intent.Action = firstMatch(actionPatterns, query)
	for _, p := range libraryPatterns {
		if p.re.MatchString(query) {
			intent.Libraries = append(intent.Libraries, p.name)
		}
	}
	return intent
}

func firstMatch(patterns []keywordPattern, s string) string {
	for _, p := range patterns {
		if p.re.MatchString(s) {
			return p.name
		}
	}
	return ""
}
