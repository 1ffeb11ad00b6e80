// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a ledger of conversion attempts in a SQLite
// database under the user state directory. Ledger failures are never
// allowed to fail a conversion; callers log and continue.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docsmith/pkg/types"
)

const dbFile = "history.db"

// Store manages the conversion ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at cfg.Dir/history.db, creating the
// schema if needed. An empty Dir means the user state directory.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join(xdg.StateHome, "docsmith")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			error TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_kind ON conversions(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Entry is one recorded conversion attempt.
type Entry struct {
	ID        int64         `json:"id" yaml:"id"`
	Kind      types.Kind    `json:"kind" yaml:"kind"`
	Input     string        `json:"input" yaml:"input"`
	Output    string        `json:"output" yaml:"output"`
	Status    types.Status  `json:"status" yaml:"status"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}

// Record appends one conversion result to the ledger.
func (s *Store) Record(ctx context.Context, kind types.Kind, res types.Result) error {
	errMsg := ""
	if res.Err != nil {
		errMsg = res.Err.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (kind, input, output, status, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(kind), res.Input, res.Output, string(res.Status()), errMsg,
		res.Duration.Milliseconds(), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. kind filters when
// non-empty; limit caps the result (default 20).
func (s *Store) Recent(ctx context.Context, kind types.Kind, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, kind, input, output, status, error, duration_ms, created_at
		FROM conversions`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kindStr, statusStr, createdAt string
		var durationMs int64
		if err := rows.Scan(&e.ID, &kindStr, &e.Input, &e.Output, &statusStr, &e.Error, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.Kind = types.Kind(kindStr)
		e.Status = types.Status(statusStr)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summary aggregates ledger counts per pipeline.
type Summary struct {
	Kind   types.Kind `json:"kind" yaml:"kind"`
	Total  int        `json:"total" yaml:"total"`
	Done   int        `json:"done" yaml:"done"`
	Failed int        `json:"failed" yaml:"failed"`
}

// Summarize returns per-kind counts, ordered by kind name.
func (s *Store) Summarize(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind,
			COUNT(*),
			SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END)
		FROM conversions GROUP BY kind ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("summarizing ledger: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		var kindStr string
		if err := rows.Scan(&kindStr, &sm.Total, &sm.Done, &sm.Failed); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		sm.Kind = types.Kind(kindStr)
		out = append(out, sm)
	}
	return out, rows.Err()
}
