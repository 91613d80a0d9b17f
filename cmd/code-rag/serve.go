// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/code-rag/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the code_rag and extract_context tools over MCP stdio",
	Long: `Serve runs a Model Context Protocol server on stdin/stdout. Logs go to
stderr. The result cache lives for the life of the process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		r, cleanup, err := buildRetriever(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		return mcp.NewServer(r, version, logger).Serve(cmd.Context(), os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
