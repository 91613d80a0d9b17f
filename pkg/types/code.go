// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ImportKind classifies an import statement.
type ImportKind string

const (
	ImportPlain   ImportKind = "import"         // python: import x [as y]
	ImportFrom    ImportKind = "from_import"    // python: from x import a, b as c
	ImportNamed   ImportKind = "named_import"   // js/ts: import { a, b as c } from 'x'
	ImportDefault ImportKind = "default_import" // js/ts: import a from 'x'
)

// ImportMember is one name pulled in by a from-import or named import.
type ImportMember struct {
	Name  string `json:"name" yaml:"name"`
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// ImportRecord describes one import statement found in source text.
// For default imports Alias holds the local binding name.
type ImportRecord struct {
	Kind         ImportKind     `json:"kind" yaml:"kind"`
	Module       string         `json:"module" yaml:"module"`
	Alias        string         `json:"alias,omitempty" yaml:"alias,omitempty"`
	Members      []ImportMember `json:"members,omitempty" yaml:"members,omitempty"`
	OriginalText string         `json:"original_text" yaml:"original_text"`
}

// CallKind classifies a call site.
type CallKind string

const (
	CallFunction CallKind = "function_call"
	CallMethod   CallKind = "method_call"
)

// CallRecord is one lexically matched call site. Receiver is the dotted
// prefix for method calls and empty for plain function calls.
type CallRecord struct {
	Kind     CallKind `json:"kind" yaml:"kind"`
	Receiver string   `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	Member   string   `json:"member" yaml:"member"`
	FullName string   `json:"full_name" yaml:"full_name"`
}

// ErrorContext is the structured view of an error message or stack trace.
// LineNumber is zero when no frame was found.
type ErrorContext struct {
	RawMessage   string `json:"raw_message" yaml:"raw_message"`
	ErrorType    string `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	FilePath     string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	LineNumber   int    `json:"line_number,omitempty" yaml:"line_number,omitempty"`
}

// Intent is the coarse reading of a free-text request.
type Intent struct {
	Query     string   `json:"query" yaml:"query"`
	Language  string   `json:"language,omitempty" yaml:"language,omitempty"`
	Action    string   `json:"action,omitempty" yaml:"action,omitempty"`
	Libraries []string `json:"libraries" yaml:"libraries"`
}
