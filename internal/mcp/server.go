// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcp exposes retrieval and context extraction as Model Context
// Protocol tools served over stdio.
package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/pdiddy/code-rag/internal/applog"
	"github.com/pdiddy/code-rag/internal/retrieve"
)

// ServerName is the name announced to MCP clients.
const ServerName = "code-rag"

// Server wraps the MCP server with the retriever it serves.
type Server struct {
	mcp       *server.MCPServer
	retriever *retrieve.Retriever
	logger    *slog.Logger
}

// NewServer registers the code_rag and extract_context tools.
func NewServer(r *retrieve.Retriever, version string, logger *slog.Logger) *Server {
	s := &Server{
		mcp:       server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false)),
		retriever: r,
		logger:    applog.OrDefault(logger),
	}
	s.mcp.AddTool(codeRAGTool(), s.handleCodeRAG)
	s.mcp.AddTool(extractContextTool(), s.handleExtractContext)
	return s
}

// Serve reads requests from in and writes responses to out until ctx is done
// or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	s.logger.Info("mcp server listening on stdio", "name", ServerName)
	return stdio.Listen(ctx, in, out)
}
