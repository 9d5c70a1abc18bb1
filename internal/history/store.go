// Package history persists the score log across restarts in a local SQLite
// file. Every operation fails soft: a missing or corrupt store reads as an
// empty history and a failed write is logged, never surfaced to the caller.
package history

import (
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	score INTEGER NOT NULL,
	taken_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// Store is the append-only score log.
type Store struct {
	db  *sqlx.DB
	log zerolog.Logger
}

// Open connects to the SQLite file at path, creating the file and schema as
// needed. When the store cannot be opened the returned Store still works:
// it serves an empty history and drops writes, matching the fail-soft
// contract of the score log.
func Open(path string, log zerolog.Logger) *Store {
	s := &Store{log: log.With().Str("component", "history_store").Logger()}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("History dir unavailable, running without persistence")
		return s
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("History store unavailable, running without persistence")
		return s
	}

	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		s.log.Warn().Err(err).Msg("History schema init failed, running without persistence")
		_ = db.Close()
		return s
	}

	s.db = db
	return s
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns all past scores in insertion order. A broken store reads as
// empty.
func (s *Store) Load() []int {
	if s.db == nil {
		return []int{}
	}

	var scores []int
	if err := s.db.Select(&scores, "SELECT score FROM scores ORDER BY id"); err != nil {
		s.log.Warn().Err(err).Msg("History load failed, treating as empty")
		return []int{}
	}
	if scores == nil {
		scores = []int{}
	}
	return scores
}

// Append records one score and returns the updated history. The write is
// fire-and-forget: on failure the score is still part of the returned
// sequence so the results screen stays consistent for this run.
func (s *Store) Append(score int) []int {
	loaded := s.Load()

	if s.db != nil {
		if _, err := s.db.Exec("INSERT INTO scores (score) VALUES (?)", score); err != nil {
			s.log.Warn().Err(err).Int("score", score).Msg("History append failed")
		}
	}

	return append(loaded, score)
}

// Clear removes all persisted scores. Clearing an empty or broken store is
// a no-op.
func (s *Store) Clear() {
	if s.db == nil {
		return
	}
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		s.log.Warn().Err(err).Msg("History clear failed")
	}
}
