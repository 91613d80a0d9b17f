// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/code-rag/pkg/types"
)

// ToolRequest is the single-entry form of a retrieval used by the CLI query
// command and the MCP tool.
type ToolRequest struct {
	QueryType   string
	Query       string
	Library     string
	Function    string
	FileContent string
	Language    string
	MaxResults  int
}

// InvalidQueryType is the message returned for an unknown query type.
func InvalidQueryType(t string) string {
	names := make([]string, len(types.QueryTypes))
	for i, qt := range types.QueryTypes {
		names[i] = string(qt)
	}
	return fmt.Sprintf("Invalid query_type: %s. Must be one of: %s.", t, strings.Join(names, ", "))
}

// Dispatch runs the retrieval named by req.QueryType. For api_doc lookups a
// missing library or function is taken from the first and last segments of
// a dotted query such as "pandas.DataFrame.merge". ok is false when the query
// type is unknown.
func (r *Retriever) Dispatch(ctx context.Context, req ToolRequest) (out Output, ok bool, err error) {
	switch types.QueryType(req.QueryType) {
	case types.QueryAPIDoc:
		library, function := req.Library, req.Function
		segments := strings.Split(req.Query, ".")
		if library == "" {
			library = segments[0]
		}
		if function == "" {
			function = segments[len(segments)-1]
		}
		out, err = r.RetrieveAPIDocumentation(ctx, library, function, "", req.MaxResults)
	case types.QueryErrorSolution:
		out, err = r.RetrieveErrorSolutions(ctx, req.Query, req.MaxResults)
	case types.QueryImplementation:
		out, err = r.RetrieveImplementationExamples(ctx, req.Query, req.FileContent, req.Language, req.MaxResults)
	default:
		return Output{}, false, nil
	}
	return out, true, err
}

// Execute runs req and returns the formatted report. An unknown query type
// is reported in the returned text, not as an error.
func (r *Retriever) Execute(ctx context.Context, req ToolRequest) (string, error) {
	out, ok, err := r.Dispatch(ctx, req)
	if !ok {
		return InvalidQueryType(req.QueryType), nil
	}
	if err != nil {
		return "", err
	}
	return FormatResults(out.Results), nil
}
