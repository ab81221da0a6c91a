// Package store keeps a lightweight request history in SQLite. Only
// metadata about each summarization request is recorded; extracted text,
// summaries, and audio are never persisted.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "briefcast.db"

const schema = `
CREATE TABLE IF NOT EXISTS requests (
	request_id    INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	source_kind   TEXT NOT NULL,
	source_ref    TEXT NOT NULL,
	status        TEXT NOT NULL,
	error_kind    TEXT,
	content_type  TEXT,
	chunk_count   INTEGER NOT NULL DEFAULT 0,
	summary_chars INTEGER NOT NULL DEFAULT 0,
	audio_bytes   INTEGER NOT NULL DEFAULT 0,
	duration_ms   INTEGER NOT NULL DEFAULT 0,
	top_keywords  TEXT
);

CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at);
CREATE INDEX IF NOT EXISTS idx_requests_source_kind ON requests(source_kind);
`

type Store struct {
	*sql.DB
	path string
}

// Record is one row of request history.
type Record struct {
	RequestID    int64
	CreatedAt    time.Time
	SourceKind   string
	SourceRef    string
	Status       string
	ErrorKind    string
	ContentType  string
	ChunkCount   int
	SummaryChars int
	AudioBytes   int
	DurationMS   int64
	TopKeywords  []string
}

// Open opens or creates the history database under dir.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, DefaultDBName)
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{DB: sqlDB, path: dbPath}
	if err := s.InitSchema(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory database, used by tests.
func OpenMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{DB: sqlDB, path: ":memory:"}
	if err := s.InitSchema(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InitSchema creates the schema if it does not exist.
func (s *Store) InitSchema() error {
	_, err := s.Exec(schema)
	return err
}

// Insert records one request and returns its ID.
func (s *Store) Insert(rec Record) (int64, error) {
	result, err := s.Exec(`
		INSERT INTO requests (source_kind, source_ref, status, error_kind,
			content_type, chunk_count, summary_chars, audio_bytes, duration_ms, top_keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.SourceKind, rec.SourceRef, rec.Status, nullable(rec.ErrorKind),
		nullable(rec.ContentType), rec.ChunkCount, rec.SummaryChars,
		rec.AudioBytes, rec.DurationMS, nullable(strings.Join(rec.TopKeywords, ",")))
	if err != nil {
		return 0, fmt.Errorf("failed to insert request: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get request ID: %w", err)
	}
	return id, nil
}

// Recent returns the most recent requests, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	query := `
		SELECT request_id, created_at, source_kind, source_ref, status,
		       error_kind, content_type, chunk_count, summary_chars,
		       audio_bytes, duration_ms, top_keywords
		FROM requests
		ORDER BY request_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountByStatus returns how many requests have each status.
func (s *Store) CountByStatus() (map[string]int, error) {
	rows, err := s.Query(`SELECT status, COUNT(*) FROM requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var errorKind, contentType, keywords sql.NullString
	if err := rows.Scan(&rec.RequestID, &rec.CreatedAt, &rec.SourceKind,
		&rec.SourceRef, &rec.Status, &errorKind, &contentType,
		&rec.ChunkCount, &rec.SummaryChars, &rec.AudioBytes,
		&rec.DurationMS, &keywords); err != nil {
		return Record{}, fmt.Errorf("failed to scan request: %w", err)
	}
	rec.ErrorKind = errorKind.String
	rec.ContentType = contentType.String
	if keywords.Valid && keywords.String != "" {
		rec.TopKeywords = strings.Split(keywords.String, ",")
	}
	return rec, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
