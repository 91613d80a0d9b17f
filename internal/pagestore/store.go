// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagestore keeps fetched pages in a local SQLite database so that
// repeated retrievals across process runs do not refetch the same links.
// It plugs into the pipeline as a fetch.Fetcher decorator.
package pagestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/code-rag/internal/applog"
	"github.com/pdiddy/code-rag/internal/fetch"
)

// Store manages the page cache database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the page cache at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating page cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening page cache: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			url TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_fetched_at ON pages(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Page is one cached body.
type Page struct {
	URL       string
	Body      string
	FetchedAt time.Time
}

// Get returns the cached page for url. ok is false when nothing is stored.
func (s *Store) Get(ctx context.Context, url string) (page Page, ok bool, err error) {
	var fetchedAt string
	err = s.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM pages WHERE url = ?`, url,
	).Scan(&page.Body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Page{}, false, nil
	}
	if err != nil {
		return Page{}, false, fmt.Errorf("reading page %s: %w", url, err)
	}

	page.URL = url
	page.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return Page{}, false, fmt.Errorf("parsing fetched_at for %s: %w", url, err)
	}
	return page, true, nil
}

// Put stores body for url, replacing any previous copy.
func (s *Store) Put(ctx context.Context, url, body string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pages (url, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET body=excluded.body, fetched_at=excluded.fetched_at`,
		url, body, s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storing page %s: %w", url, err)
	}
	return nil
}

// Prune deletes pages fetched before now minus maxAge and returns how many
// were removed.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge).UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning pages: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of cached pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return n, nil
}

// Fetcher returns a read-through fetch.Fetcher: pages younger than maxAge
// (any age when maxAge is zero) are served from the store, everything else
// goes to next and is written back. Store errors are logged and never fail
// a fetch.
func (s *Store) Fetcher(next fetch.Fetcher, maxAge time.Duration, logger *slog.Logger) fetch.Fetcher {
	logger = applog.OrDefault(logger)
	return fetch.Func(func(ctx context.Context, url string) (string, error) {
		page, ok, err := s.Get(ctx, url)
		if err != nil {
			logger.Warn("page cache read failed", "url", url, "error", err)
		}
		if ok && (maxAge <= 0 || s.now().Sub(page.FetchedAt) <= maxAge) {
			return page.Body, nil
		}

		body, err := next.Fetch(ctx, url)
		if err != nil {
			return "", err
		}
		if err := s.Put(ctx, url, body); err != nil {
			logger.Warn("page cache write failed", "url", url, "error", err)
		}
		return body, nil
	})
}
