// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query turns extracted facts into search strings.
package query

import "strings"

const (
	// MaxErrorMessageRunes caps the error message part of an error query.
	MaxErrorMessageRunes = 100

	// MaxQueryLibraries is how many preferred libraries an implementation
	// query mentions.
	MaxQueryLibraries = 3
)

// APIUsage builds "{library} {function} example", followed by extra context
// when given.
func APIUsage(library, function, context string) string {
	q := library + " " + function + " example"
	if context != "" {
		q += " " + context
	}
	return q
}

var quoteStripper = strings.NewReplacer(`"`, "", "'", "")

// ErrorResolution builds a query from an error type and message. Quotes are
// removed and the message is cut to MaxErrorMessageRunes characters.
func ErrorResolution(errorType, message string) string {
	cleaned := quoteStripper.Replace(message)
	if r := []rune(cleaned); len(r) > MaxErrorMessageRunes {
		cleaned = string(r[:MaxErrorMessageRunes])
	}
	if errorType == "" {
		return cleaned
	}
	return errorType + ": " + cleaned
}

// Implementation builds a query for examples of a task, naming up to
// MaxQueryLibraries preferred libraries.
func Implementation(task string, libraries []string) string {
	q := task
	if len(libraries) > 0 {
		if len(libraries) > MaxQueryLibraries {
			libraries = libraries[:MaxQueryLibraries]
		}
		q += " using " + strings.Join(libraries, " ")
	}
	return q + " code example implementation"
}
