// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the code-rag CLI. Each retrieval kind
// is a subcommand; serve exposes the same operations as MCP tools on stdio.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/code-rag/internal/applog"
	"github.com/pdiddy/code-rag/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from the loaded configuration before any subcommand runs.
var logger = slog.Default()

// rootCmd is the base command for the code-rag CLI.
var rootCmd = &cobra.Command{
	Use:   "code-rag",
	Short: "Retrieve and rank code documentation, error fixes, and examples",
	Long: `code-rag searches official documentation, Stack Overflow, and GitHub for
material that helps with a coding task, ranks what it finds, and prints a
markdown report.

Use api for library documentation, error for error messages and tracebacks,
and implement for worked examples of a task. serve runs the same lookups as
MCP tools over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger = applog.Init(cfg.Log, os.Stderr)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./code-rag.yaml or ~/.config/code-rag/code-rag.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: loading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("code-rag")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "code-rag"))
		}
	}

	viper.SetEnvPrefix("CODE_RAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setConfigDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// setConfigDefaults registers every key so environment variables such as
// CODE_RAG_FETCH_TIMEOUT are seen by Unmarshal.
func setConfigDefaults() {
	viper.SetDefault("fetch.timeout", types.DefaultTimeout)
	viper.SetDefault("fetch.user_agent", types.DefaultUserAgent)
	viper.SetDefault("fetch.max_bytes", types.DefaultMaxBytes)
	viper.SetDefault("fetch.rate_limit_retries", 2)
	viper.SetDefault("fetch.memo_size", 128)
	viper.SetDefault("fetch.page_cache.path", "")
	viper.SetDefault("fetch.page_cache.max_age", 0)
	viper.SetDefault("search.search_url", types.DefaultSearchURL)
	viper.SetDefault("search.max_results", types.DefaultMaxResults)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.add_source", false)
}

// loadConfig decodes the merged file, environment and flag settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg.WithDefaults(), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
