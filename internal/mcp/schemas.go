// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/code-rag/pkg/types"
)

func queryTypeNames() []interface{} {
	names := make([]interface{}, len(types.QueryTypes))
	for i, t := range types.QueryTypes {
		names[i] = string(t)
	}
	return names
}

// codeRAGTool returns the tool definition for code_rag.
func codeRAGTool() mcp.Tool {
	return mcp.Tool{
		Name:        "code_rag",
		Description: "Retrieve relevant code documentation, examples, and solutions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query_type": map[string]interface{}{
					"type":        "string",
					"enum":        queryTypeNames(),
					"description": "Type of query to perform",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The query string (API function, error message, or task description)",
				},
				"library": map[string]interface{}{
					"type":        "string",
					"description": "The library or module name (for API documentation)",
				},
				"function": map[string]interface{}{
					"type":        "string",
					"description": "The function or method name (for API documentation)",
				},
				"file_content": map[string]interface{}{
					"type":        "string",
					"description": "Content of the current file for context extraction",
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "The programming language",
					"default":     "python",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     types.DefaultMaxResults,
					"minimum":     1,
				},
			},
			Required: []string{"query_type", "query"},
		},
	}
}

// extractContextTool returns the tool definition for extract_context.
func extractContextTool() mcp.Tool {
	return mcp.Tool{
		Name:        "extract_context",
		Description: "Extract imports, calls, error details and intent from code, error output, or a request",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"file_content": map[string]interface{}{
					"type":        "string",
					"description": "Source text to scan for imports and calls",
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "Language of file_content (python, javascript, typescript)",
					"default":     "python",
				},
				"error_message": map[string]interface{}{
					"type":        "string",
					"description": "Error message or traceback to parse",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text request to read the intent of",
				},
			},
		},
	}
}
