// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/code-rag/internal/extract"
	"github.com/pdiddy/code-rag/internal/retrieve"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Show the imports, calls, error details or intent code-rag reads from its input",
	Long: `Extract runs the context extractor without searching. --file lists imports
and call sites, --error parses an error message (- reads stdin), and
--intent reads the language, action and libraries of a request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readOptionalFile(cmd, "file")
		if err != nil {
			return err
		}
		language, _ := cmd.Flags().GetString("language")
		errArg, _ := cmd.Flags().GetString("error")
		intentArg, _ := cmd.Flags().GetString("intent")
		if content == "" && errArg == "" && intentArg == "" {
			return fmt.Errorf("nothing to extract: provide --file, --error, or --intent")
		}

		ex := extract.New(extract.WithLogger(logger))
		report := map[string]any{}
		if content != "" {
			report["imports"] = ex.ExtractImports(cmd.Context(), content, language)
			report["calls"] = ex.ExtractFunctionCalls(content, language)
		}
		if errArg != "" {
			message, err := argOrStdin(cmd, errArg)
			if err != nil {
				return err
			}
			report["error"] = ex.ExtractErrorContext(message)
		}
		if intentArg != "" {
			report["intent"] = ex.ExtractIntent(intentArg)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	extractCmd.Flags().String("file", "", "source file to scan")
	extractCmd.Flags().String("language", retrieve.DefaultLanguage, "language of --file")
	extractCmd.Flags().String("error", "", "error message or traceback (- for stdin)")
	extractCmd.Flags().String("intent", "", "free-text request")
	rootCmd.AddCommand(extractCmd)
}
