// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/code-rag/internal/retrieve"
)

var showCmd = &cobra.Command{
	Use:   "show <file.yaml>",
	Short: "Print results saved with --save without querying again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qf, err := retrieve.ReadQueryFile(args[0])
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if !jsonOutput {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %q, saved %s\n",
				qf.Request.Type, qf.Request.Query, qf.Summary.Timestamp.Format("2006-01-02 15:04"))
		}
		return printOutput(cmd.OutOrStdout(), qf.Output(), jsonOutput)
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(showCmd)
}
