// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/code-rag/pkg/types"
)

var (
	errorLineRe = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*(?:Error|Exception)):\s*(.*)`)
	frameRe     = regexp.MustCompile(`File\s+"([^"]+)",\s+line\s+(\d+)`)
)

// ExtractErrorContext reads the error type, message and source location out
// of an error message or traceback. The location comes from the first frame
// in the text, which for Python tracebacks is the outermost call.
func (e *Extractor) ExtractErrorContext(message string) types.ErrorContext {
	ec := types.ErrorContext{RawMessage: message}

	if m := errorLineRe.FindStringSubmatch(message); m != nil {
		ec.ErrorType = m[1]
		ec.ErrorMessage = strings.TrimSpace(m[2])
	}

	if m := frameRe.FindStringSubmatch(message); m != nil {
		ec.FilePath = m[1]
		if n, err := strconv.Atoi(m[2]); err == nil {
			ec.LineNumber = n
		}
	}

	if ec.ErrorType == "" {
		ec.ErrorType = guessErrorType(strings.ToLower(message))
	}
	return ec
}

// guessErrorType applies keyword heuristics in fixed priority order.
func guessErrorType(lower string) string {
	switch {
	case strings.Contains(lower, "undefined") && strings.Contains(lower, "not defined"):
		return "NameError"
	case strings.Contains(lower, "import") && strings.Contains(lower, "could not"):
		return "ImportError"
	case strings.Contains(lower, "syntax"):
		return "SyntaxError"
	}
	return ""
}
