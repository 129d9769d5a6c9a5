// Package history keeps a local log of extractions in a SQLite database.
// Only the request and its outcome are stored, never media URLs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mediagrab/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
	id         TEXT PRIMARY KEY,
	provider   TEXT NOT NULL,
	url        TEXT NOT NULL,
	ok         INTEGER NOT NULL,
	message    TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS extractions_created_at ON extractions (created_at);
`

// Record is one logged extraction.
type Record struct {
	ID        string
	Provider  string
	URL       string
	OK        bool
	Message   string
	CreatedAt time.Time
}

// Store is an open extraction log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// One writer at a time; sqlite serialises anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the database at config.HistoryPath.
func OpenDefault() (*Store, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save appends r to the log. Empty ID and CreatedAt are filled in.
func (s *Store) Save(ctx context.Context, r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO extractions (id, provider, url, ok, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Provider, r.URL, r.OK, r.Message, r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return r, fmt.Errorf("saving history record: %w", err)
	}
	return r, nil
}

// Load returns up to limit records, newest first. A limit <= 0 returns all.
func (s *Store) Load(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, provider, url, ok, message, created_at FROM extractions ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r       Record
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Provider, &r.URL, &r.OK, &r.Message, &created); err != nil {
			return nil, fmt.Errorf("scanning history record: %w", err)
		}
		r.CreatedAt = time.UnixMilli(created)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return records, nil
}

// Clear deletes every record and reports how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM extractions`)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}

// FormatForDisplay renders one line per record.
func FormatForDisplay(records []Record) []string {
	items := make([]string, 0, len(records))
	for _, r := range records {
		status := "ok"
		if !r.OK {
			status = "failed"
		}
		line := fmt.Sprintf("%s  %-15s %-6s %s", r.CreatedAt.Format("2006-01-02 15:04"), r.Provider, status, r.URL)
		if !r.OK && r.Message != "" {
			line += fmt.Sprintf(" (%s)", r.Message)
		}
		items = append(items, line)
	}
	return items
}
