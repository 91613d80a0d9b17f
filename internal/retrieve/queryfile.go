// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/code-rag/pkg/types"
)

// QueryFile is the on-disk form of a retrieval and its ranked results, so a
// report can be shown again without querying the sources.
type QueryFile struct {
	Request Request           `yaml:"request"`
	Results []types.Candidate `yaml:"results"`
	Summary QuerySummary      `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total        int       `yaml:"total"`
	Cached       bool      `yaml:"cached,omitempty"`
	SourceErrors []string  `yaml:"source_errors,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves out to path as YAML.
func WriteQueryFile(path string, out Output) error {
	qf := QueryFile{
		Request: out.Request,
		Results: out.Results,
		Summary: QuerySummary{
			Total:        len(out.Results),
			Cached:       out.Cached,
			SourceErrors: out.SourceErrors,
			Timestamp:    time.Now().UTC(),
		},
	}
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing query file: %w", err)
	}
	return nil
}

// ReadQueryFile loads a file written by WriteQueryFile.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Output converts the file back into the form returned by a retrieval.
func (qf *QueryFile) Output() Output {
	return Output{
		Request:      qf.Request,
		Results:      qf.Results,
		SourceErrors: qf.Summary.SourceErrors,
		Cached:       qf.Summary.Cached,
	}
}
