// Package history persists one row per executed exchange in a local
// SQLite database, so probe outcomes can be compared across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded exchange.
type Entry struct {
	ID         int64
	RecordedAt time.Time
	Method     string
	URL        string
	StatusCode int
	DurationMs int64
	Passed     bool
	Failure    string
}

// Store wraps the SQLite database holding the run history.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) a history database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at TIMESTAMP NOT NULL,
	method      TEXT NOT NULL,
	url         TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	passed      BOOLEAN NOT NULL,
	failure     TEXT NOT NULL DEFAULT ''
);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one entry and returns its assigned ID.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (recorded_at, method, url, status_code, duration_ms, passed, failure)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RecordedAt, e.Method, e.URL, e.StatusCode, e.DurationMs, e.Passed, e.Failure)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return result.LastInsertId()
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recorded_at, method, url, status_code, duration_ms, passed, failure
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.RecordedAt, &e.Method, &e.URL, &e.StatusCode, &e.DurationMs, &e.Passed, &e.Failure); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
