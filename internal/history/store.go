package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one finished compression recorded in the ledger.
type Entry struct {
	ID          int64
	CreatedAt   time.Time
	Source      string
	InputName   string
	OutputName  string
	Preset      string
	Codec       string
	CRF         int
	InputBytes  int64
	OutputBytes int64
	Ratio       float64
	DurationMS  int64
}

// Source labels for recorded entries.
const (
	SourceCLI = "cli"
	SourceWeb = "web"
)

// Store persists compression results in SQLite. It is append-only: nothing
// in the tool schedules work from it.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS compressions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    source TEXT NOT NULL,
    input_name TEXT NOT NULL,
    output_name TEXT NOT NULL,
    preset TEXT NOT NULL,
    codec TEXT NOT NULL,
    crf INTEGER NOT NULL,
    input_bytes INTEGER NOT NULL,
    output_bytes INTEGER NOT NULL,
    ratio REAL NOT NULL,
    duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_compressions_created_at ON compressions (created_at DESC);
`

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a finished compression.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("history store is closed")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO compressions (
            created_at, source, input_name, output_name, preset, codec,
            crf, input_bytes, output_bytes, ratio, duration_ms
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UTC().Format(time.RFC3339Nano),
		entry.Source,
		entry.InputName,
		entry.OutputName,
		entry.Preset,
		entry.Codec,
		entry.CRF,
		entry.InputBytes,
		entry.OutputBytes,
		entry.Ratio,
		entry.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("insert compression: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("history store is closed")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, created_at, source, input_name, output_name, preset, codec,
                crf, input_bytes, output_bytes, ratio, duration_ms
         FROM compressions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query compressions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt string
		if err := rows.Scan(
			&entry.ID,
			&createdAt,
			&entry.Source,
			&entry.InputName,
			&entry.OutputName,
			&entry.Preset,
			&entry.Codec,
			&entry.CRF,
			&entry.InputBytes,
			&entry.OutputBytes,
			&entry.Ratio,
			&entry.DurationMS,
		); err != nil {
			return nil, fmt.Errorf("scan compression: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compressions: %w", err)
	}
	return entries, nil
}
