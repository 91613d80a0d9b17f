// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/code-rag/internal/retrieve"
	"github.com/pdiddy/code-rag/pkg/types"
)

// --- api subcommand ---

var apiCmd = &cobra.Command{
	Use:   "api <library> <function>",
	Short: "Find documentation and usage examples for a library function",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, _ := cmd.Flags().GetString("context")
		return runRetrieval(cmd, func(ctx context.Context, r *retrieve.Retriever, max int) (retrieve.Output, error) {
			return r.RetrieveAPIDocumentation(ctx, args[0], args[1], extra, max)
		})
	},
}

// --- error subcommand ---

var errorCmd = &cobra.Command{
	Use:   "error <message|->",
	Short: "Find solutions for an error message or traceback",
	Long: `Error parses the error type, message and first stack frame out of the
given text and searches for fixes. Pass - to read a traceback from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, err := argOrStdin(cmd, args[0])
		if err != nil {
			return err
		}
		return runRetrieval(cmd, func(ctx context.Context, r *retrieve.Retriever, max int) (retrieve.Output, error) {
			return r.RetrieveErrorSolutions(ctx, message, max)
		})
	},
}

// --- implement subcommand ---

var implementCmd = &cobra.Command{
	Use:   "implement <task>",
	Short: "Find implementation examples for a task",
	Long: `Implement searches for worked examples of a task. With --file, modules
imported by the file are added to the query as preferred libraries.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readOptionalFile(cmd, "file")
		if err != nil {
			return err
		}
		language, _ := cmd.Flags().GetString("language")
		task := strings.Join(args, " ")
		return runRetrieval(cmd, func(ctx context.Context, r *retrieve.Retriever, max int) (retrieve.Output, error) {
			return r.RetrieveImplementationExamples(ctx, task, content, language, max)
		})
	},
}

// --- query subcommand ---

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a retrieval by query type, as the code_rag tool does",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readOptionalFile(cmd, "file")
		if err != nil {
			return err
		}
		req := retrieve.ToolRequest{FileContent: content}
		req.QueryType, _ = cmd.Flags().GetString("type")
		req.Query, _ = cmd.Flags().GetString("query")
		req.Library, _ = cmd.Flags().GetString("library")
		req.Function, _ = cmd.Flags().GetString("function")
		req.Language, _ = cmd.Flags().GetString("language")
		if req.Query == "" {
			return fmt.Errorf("--query is required")
		}
		if !types.QueryType(req.QueryType).Valid() {
			fmt.Fprintln(cmd.OutOrStdout(), retrieve.InvalidQueryType(req.QueryType))
			return nil
		}
		return runRetrieval(cmd, func(ctx context.Context, r *retrieve.Retriever, max int) (retrieve.Output, error) {
			req.MaxResults = max
			out, _, err := r.Dispatch(ctx, req)
			return out, err
		})
	},
}

type retrievalFunc func(ctx context.Context, r *retrieve.Retriever, maxResults int) (retrieve.Output, error)

// runRetrieval builds the pipeline from config, runs fn and prints or saves
// the output according to the shared flags.
func runRetrieval(cmd *cobra.Command, fn retrievalFunc) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, cleanup, err := buildRetriever(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = cfg.Search.MaxResults
	}

	out, err := fn(cmd.Context(), r, maxResults)
	if err != nil {
		return err
	}
	for _, e := range out.SourceErrors {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: source %s\n", e)
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := retrieve.WriteQueryFile(savePath, out); err != nil {
			return err
		}
		logger.Info("saved results", "path", savePath, "results", len(out.Results))
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printOutput(cmd.OutOrStdout(), out, jsonOutput)
}

func printOutput(w io.Writer, out retrieve.Output, jsonOutput bool) error {
	if jsonOutput {
		return retrieve.FormatJSON(out, w)
	}
	_, err := fmt.Fprintln(w, retrieve.FormatResults(out.Results))
	return err
}

func argOrStdin(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func readOptionalFile(cmd *cobra.Command, flag string) (string, error) {
	path, _ := cmd.Flags().GetString(flag)
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-results", 0, "maximum number of links followed per source (default from config)")
	cmd.Flags().Bool("json", false, "output results as JSON")
	cmd.Flags().String("save", "", "save the request and results to a YAML file")
}

func init() {
	apiCmd.Flags().String("context", "", "extra words appended to the query")

	implementCmd.Flags().String("file", "", "source file whose imports seed the library list")
	implementCmd.Flags().String("language", retrieve.DefaultLanguage, "language of --file and of the examples")

	queryCmd.Flags().String("type", "", "query type: api_doc, error_solution, implementation")
	queryCmd.Flags().String("query", "", "API name, error message, or task description")
	queryCmd.Flags().String("library", "", "library name for api_doc")
	queryCmd.Flags().String("function", "", "function name for api_doc")
	queryCmd.Flags().String("file", "", "source file for implementation lookups")
	queryCmd.Flags().String("language", retrieve.DefaultLanguage, "programming language")

	for _, c := range []*cobra.Command{apiCmd, errorCmd, implementCmd, queryCmd} {
		addOutputFlags(c)
		rootCmd.AddCommand(c)
	}
}
