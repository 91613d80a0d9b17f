// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/code-rag/internal/pagestore"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or prune the on-disk page cache",
	Long: `Cache operates on the SQLite page cache configured by fetch.page_cache.path.
With no flags it prints the number of cached pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := cfg.Fetch.PageCache.Path
		if path == "" {
			return fmt.Errorf("no page cache configured: set fetch.page_cache.path")
		}
		store, err := pagestore.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		if olderThan, _ := cmd.Flags().GetDuration("prune"); olderThan > 0 {
			removed, err := store.Prune(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d pages older than %s\n", removed, olderThan)
		}

		n, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages\n", path, n)
		return nil
	},
}

func init() {
	cacheCmd.Flags().Duration("prune", 0, "delete pages fetched longer ago than this (e.g. 168h)")
	rootCmd.AddCommand(cacheCmd)
}
