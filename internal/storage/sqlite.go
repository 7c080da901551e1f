// Package storage provides SQLite-based persistence for adaptation
// sessions and the adjustments made during them. Uses the pure-Go
// modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for history persistence.
type Store struct {
	db *sql.DB
}

// SessionRecord summarizes one controller session.
type SessionRecord struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	Deaths      int
	Adjustments int
}

// AdjustmentRecord is one committed difficulty change.
type AdjustmentRecord struct {
	ID        int64
	SessionID string
	Symptom   string
	Profile   string // flat JSON of variable values
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			deaths INTEGER NOT NULL DEFAULT 0,
			adjustments INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS adjustments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			symptom TEXT NOT NULL,
			profile TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		);
		CREATE INDEX IF NOT EXISTS idx_adjustments_session ON adjustments(session_id);
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

// BeginSession records the start of a new session.
func (s *Store) BeginSession(id string, startedAt time.Time) error {
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, started_at) VALUES (?, ?)",
		id, startedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot begin session: %w", err)
	}
	return nil
}

// EndSession closes out a session with its final counters.
func (s *Store) EndSession(id string, endedAt time.Time, deaths, adjustments int) error {
	_, err := s.db.Exec(
		"UPDATE sessions SET ended_at = ?, deaths = ?, adjustments = ? WHERE id = ?",
		endedAt.UTC().Format(timeLayout), deaths, adjustments, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	return nil
}

// SaveAdjustment records one committed difficulty change.
// Returns the ID of the inserted record.
func (s *Store) SaveAdjustment(sessionID, symptom, profileJSON string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO adjustments (session_id, symptom, profile) VALUES (?, ?, ?)",
		sessionID, symptom, profileJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save adjustment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, ended_at, deaths, adjustments
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var started, ended any
		if err := rows.Scan(&r.ID, &started, &ended, &r.Deaths, &r.Adjustments); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.EndedAt = parseTime(ended)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// Adjustments retrieves the adjustments of one session, oldest first.
func (s *Store) Adjustments(sessionID string) ([]AdjustmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, symptom, profile, created_at
		 FROM adjustments
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query adjustments: %w", err)
	}
	defer rows.Close()

	var records []AdjustmentRecord
	for rows.Next() {
		var r AdjustmentRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Symptom, &r.Profile, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
