// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/code-rag/pkg/types"
)

var callRe = regexp.MustCompile(`([a-zA-Z0-9_]+(?:\.[a-zA-Z0-9_]+)*)\s*\(`)

// ExtractFunctionCalls returns one record per lexical call site. The scan
// does not understand strings, comments or tuple parentheses, so those can
// produce extra records.
func (e *Extractor) ExtractFunctionCalls(text, language string) []types.CallRecord {
	switch normalizeLanguage(language) {
	case "python", "javascript", "typescript":
	default:
		return nil
	}

	var calls []types.CallRecord
	for _, m := range callRe.FindAllStringSubmatch(text, -1) {
		full := m[1]
		if i := strings.LastIndexByte(full, '.'); i >= 0 {
			calls = append(calls, types.CallRecord{
				Kind:     types.CallMethod,
				Receiver: full[:i],
				Member:   full[i+1:],
				FullName: full,
			})
			continue
		}
		calls = append(calls, types.CallRecord{
			Kind:     types.CallFunction,
			Member:   full,
			FullName: full,
		})
	}
	return calls
}
