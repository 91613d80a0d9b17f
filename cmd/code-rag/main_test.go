// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/code-rag/pkg/types"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	initConfig()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, types.DefaultSearchURL, cfg.Search.SearchURL)
	assert.Equal(t, types.DefaultMaxResults, cfg.Search.MaxResults)
	assert.Equal(t, 128, cfg.Fetch.MemoSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("CODE_RAG_SEARCH_MAX_RESULTS", "7")
	t.Setenv("CODE_RAG_FETCH_TIMEOUT", "5s")
	t.Setenv("CODE_RAG_FETCH_PAGE_CACHE_MAX_AGE", "24h")
	initConfig()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.MaxResults)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Fetch.PageCache.MaxAge)
}

func TestBuildRetriever_WithPageCache(t *testing.T) {
	cfg := types.Config{}.WithDefaults()
	cfg.Fetch.MemoSize = 8
	cfg.Fetch.PageCache.Path = filepath.Join(t.TempDir(), "pages.db")

	r, cleanup, err := buildRetriever(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, r)
	assert.FileExists(t, cfg.Fetch.PageCache.Path)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "code-rag dev\n", buf.String())
}
