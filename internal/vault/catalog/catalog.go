// Package catalog maintains a SQLite index of created journal notes.
//
// The catalog is an optimization for history queries only. Note
// identity and related-entry resolution stay file-scan based in the
// vault package; losing or deleting the catalog loses no journal data.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultRelPath is the catalog location relative to the vault root.
const DefaultRelPath = ".voxvault/catalog.db"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id               TEXT PRIMARY KEY,
	date_key         TEXT NOT NULL,
	note_path        TEXT NOT NULL,
	word_count       INTEGER NOT NULL,
	mood             TEXT NOT NULL,
	topics           TEXT NOT NULL,
	duration_seconds REAL NOT NULL,
	audio_file       TEXT NOT NULL,
	created_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date_key);
CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
`

// Entry is one catalog row, recorded per note creation. Same-day
// overwrites produce one row per creation event on purpose; history
// shows what happened, the vault shows what remains.
type Entry struct {
	ID        string
	DateKey   string
	NotePath  string
	WordCount int
	Mood      string
	Topics    string // comma-joined
	Duration  time.Duration
	AudioFile string
	CreatedAt time.Time
}

// Stats summarises the catalog.
type Stats struct {
	Entries    int
	TotalWords int
	Moods      map[string]int
}

// Catalog wraps the SQLite index.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at path. Parent
// directories are created. The connection uses WAL with a busy timeout
// so a reader does not fail while the daemon writes.
func Open(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("catalog: create directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: init schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record inserts one entry. A missing ID is assigned; a missing
// CreatedAt becomes now.
func (c *Catalog) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO entries (id, date_key, note_path, word_count, mood, topics, duration_seconds, audio_file, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.DateKey, e.NotePath, e.WordCount, e.Mood, e.Topics,
		e.Duration.Seconds(), e.AudioFile, e.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("catalog: insert entry: %w", err)
	}
	return nil
}

// Recent returns the latest n entries, newest first.
func (c *Catalog) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, date_key, note_path, word_count, mood, topics, duration_seconds, audio_file, created_at
		FROM entries
		ORDER BY created_at DESC, id
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("catalog: query recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			seconds   float64
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.DateKey, &e.NotePath, &e.WordCount,
			&e.Mood, &e.Topics, &seconds, &e.AudioFile, &createdAt); err != nil {
			return nil, fmt.Errorf("catalog: scan entry: %w", err)
		}
		e.Duration = time.Duration(seconds * float64(time.Second))
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TotalStats aggregates entry count, total words and mood distribution.
func (c *Catalog) TotalStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Moods: make(map[string]int)}

	row := c.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(word_count), 0) FROM entries`)
	if err := row.Scan(&stats.Entries, &stats.TotalWords); err != nil {
		return nil, fmt.Errorf("catalog: scan totals: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, `SELECT mood, COUNT(*) FROM entries GROUP BY mood`)
	if err != nil {
		return nil, fmt.Errorf("catalog: query moods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			mood  string
			count int
		)
		if err := rows.Scan(&mood, &count); err != nil {
			return nil, fmt.Errorf("catalog: scan mood: %w", err)
		}
		stats.Moods[mood] = count
	}
	return stats, rows.Err()
}
