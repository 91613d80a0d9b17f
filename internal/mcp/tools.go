// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/code-rag/internal/retrieve"
	"github.com/pdiddy/code-rag/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602
	ErrorCodeInternalError = -32603
)

// MCPError is a protocol error returned from a tool handler.
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{Code: code, Message: message, Data: data}
}

// handleCodeRAG runs one retrieval and returns the markdown report. An
// unknown query_type is answered with an explanatory text result.
func (s *Server) handleCodeRAG(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	req := retrieve.ToolRequest{
		QueryType:   getStringDefault(args, "query_type", ""),
		Query:       getStringDefault(args, "query", ""),
		Library:     getStringDefault(args, "library", ""),
		Function:    getStringDefault(args, "function", ""),
		FileContent: getStringDefault(args, "file_content", ""),
		Language:    getStringDefault(args, "language", retrieve.DefaultLanguage),
		MaxResults:  getIntDefault(args, "max_results", types.DefaultMaxResults),
	}
	if req.Query == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "query parameter is required", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	s.logger.Debug("code_rag called", "query_type", req.QueryType, "query", req.Query)
	text, err := s.retriever.Execute(ctx, req)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return mcp.NewToolResultText(text), nil
}

// extractResponse is the JSON body of an extract_context result. Sections
// whose input was not supplied are omitted.
type extractResponse struct {
	Imports []types.ImportRecord `json:"imports,omitempty"`
	Calls   []types.CallRecord   `json:"calls,omitempty"`
	Error   *types.ErrorContext  `json:"error,omitempty"`
	Intent  *types.Intent        `json:"intent,omitempty"`
}

func (s *Server) handleExtractContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	content := getStringDefault(args, "file_content", "")
	language := getStringDefault(args, "language", retrieve.DefaultLanguage)
	errMsg := getStringDefault(args, "error_message", "")
	q := getStringDefault(args, "query", "")
	if content == "" && errMsg == "" && q == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "one of file_content, error_message or query is required", nil)
	}

	ex := s.retriever.Extractor()
	var resp extractResponse
	if content != "" {
		resp.Imports = ex.ExtractImports(ctx, content, language)
		resp.Calls = ex.ExtractFunctionCalls(content, language)
	}
	if errMsg != "" {
		ec := ex.ExtractErrorContext(errMsg)
		resp.Error = &ec
	}
	if q != "" {
		intent := ex.ExtractIntent(q)
		resp.Intent = &intent
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "encoding response", nil)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// getIntDefault extracts an integer parameter with a default value. JSON
// numbers arrive as float64.
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}
