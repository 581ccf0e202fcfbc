// Package store is a keyed JSON record store backed by SQLite. Each key
// holds one independent record; last write wins per key and keys are never
// transactionally coupled. Decode and write failures are logged and fall
// back to defaults; they never reach the caller.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the record store at dbPath.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Infof("Record store initialized at %s", dbPath)
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS records (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// getRaw returns the stored JSON text for key, or ok=false if absent.
func (s *Store) getRaw(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		log.Warnf("failed to read record %q: %v", key, err)
		return "", false
	}
	return value, true
}

// setRaw upserts the JSON text for key. Write failures are logged.
func (s *Store) setRaw(key, value string) {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE
		 SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		log.Errorf("failed to write record %q: %v", key, err)
	}
}

// Load reads the record at key into a value of type T. A missing key or a
// malformed stored value returns def; malformed values are logged and left
// in place to be overwritten by the next Save.
func Load[T any](s *Store, key string, def T) T {
	raw, ok := s.getRaw(key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Warnf("malformed record %q, falling back to default: %v", key, err)
		return def
	}
	return v
}

// Save serializes v and writes it at key. Encode failures are logged and
// the previous value is left untouched.
func Save[T any](s *Store, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to encode record %q: %v", key, err)
		return
	}
	s.setRaw(key, string(raw))
}
