// Package storage provides SQLite-based persistence for replay history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for replay history.
type Store struct {
	db *sql.DB
}

// PlayRecord is one playback of a replay file.
type PlayRecord struct {
	ID        int64
	Path      string
	Width     int
	Height    int
	Snakes    int
	Frames    int
	Dropped   int    // Malformed frame lines skipped while loading
	Mode      string // "paced" or "burst"
	Source    string // "play", "check" or "serve"
	Completed bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			snakes INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			dropped INTEGER NOT NULL DEFAULT 0,
			mode TEXT NOT NULL,
			source TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_plays_path ON plays(path);
		CREATE INDEX IF NOT EXISTS idx_plays_created ON plays(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePlay records a playback. Returns the ID of the inserted record.
func (s *Store) SavePlay(rec PlayRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO plays (path, width, height, snakes, frames, dropped, mode, source, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Path, rec.Width, rec.Height, rec.Snakes, rec.Frames, rec.Dropped, rec.Mode, rec.Source, rec.Completed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save play: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// MarkCompleted flags a recorded playback as having run to the last frame.
func (s *Store) MarkCompleted(id int64) error {
	_, err := s.db.Exec("UPDATE plays SET completed = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot mark play %d completed: %w", id, err)
	}
	return nil
}

const playColumns = `id, path, width, height, snakes, frames, dropped, mode, source, completed, created_at`

// PlayByID retrieves a playback record. Returns nil if it does not exist.
func (s *Store) PlayByID(id int64) (*PlayRecord, error) {
	row := s.db.QueryRow(`SELECT `+playColumns+` FROM plays WHERE id = ?`, id)
	rec, err := scanPlay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query play: %w", err)
	}
	return rec, nil
}

// RecentPlays retrieves the most recent playbacks, newest first.
func (s *Store) RecentPlays(limit int) ([]PlayRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+playColumns+`
		 FROM plays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query plays: %w", err)
	}
	defer rows.Close()

	var records []PlayRecord
	for rows.Next() {
		rec, err := scanPlay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearHistory deletes every playback record.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM plays"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// ReplayStats contains aggregated statistics for one replay file.
type ReplayStats struct {
	Path       string
	Plays      int
	Completed  int
	Frames     int
	LastPlayed time.Time
}

// GetReplayStats retrieves aggregated statistics for a replay file.
func (s *Store) GetReplayStats(path string) (*ReplayStats, error) {
	stats := &ReplayStats{Path: path}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(MAX(frames), 0), MAX(created_at)
		 FROM plays WHERE path = ?`,
		path,
	).Scan(&stats.Plays, &stats.Completed, &stats.Frames, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get replay stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllReplayStats retrieves statistics for every replay that has been played.
func (s *Store) GetAllReplayStats() (map[string]*ReplayStats, error) {
	rows, err := s.db.Query(
		`SELECT path, COUNT(*), SUM(completed), MAX(frames), MAX(created_at)
		 FROM plays
		 GROUP BY path`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all replay stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ReplayStats)
	for rows.Next() {
		var st ReplayStats
		var lastPlayed any
		if err := rows.Scan(&st.Path, &st.Plays, &st.Completed, &st.Frames, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Path] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlay(row scanner) (*PlayRecord, error) {
	var rec PlayRecord
	var createdAt any
	if err := row.Scan(
		&rec.ID,
		&rec.Path,
		&rec.Width,
		&rec.Height,
		&rec.Snakes,
		&rec.Frames,
		&rec.Dropped,
		&rec.Mode,
		&rec.Source,
		&rec.Completed,
		&createdAt,
	); err != nil {
		return nil, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
