// Package cache stores Crossref lookup results in a local SQLite
// database so repeated checks of the same CV do not re-query the API.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cvcheck/internal/record"
)

// DB wraps a SQLite lookup cache.
type DB struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path, creating
// parent directories as needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS lookups (
			query TEXT PRIMARY KEY,
			candidates TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Key derives the cache key for a record from its normalized title,
// venue, and year. Records that query Crossref identically share a key.
func Key(rec record.PublicationRecord) string {
	parts := []string{
		strings.ToLower(strings.Join(strings.Fields(rec.Title), " ")),
		strings.ToLower(strings.Join(strings.Fields(rec.Venue), " ")),
	}
	if rec.Year != 0 {
		parts = append(parts, strconv.Itoa(rec.Year))
	}
	return strings.TrimSpace(strings.Join(parts, "|"))
}

// Get returns the cached candidates for a key, or (nil, false) on a
// cache miss.
func (d *DB) Get(key string) ([]record.ExternalCandidate, bool, error) {
	var encoded string
	err := d.db.QueryRow("SELECT candidates FROM lookups WHERE query = ?", key).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache: %w", err)
	}

	var cands []record.ExternalCandidate
	if err := json.Unmarshal([]byte(encoded), &cands); err != nil {
		return nil, false, fmt.Errorf("decoding cached candidates: %w", err)
	}
	return cands, true, nil
}

// Put stores candidates for a key, replacing any previous entry.
func (d *DB) Put(key string, cands []record.ExternalCandidate) error {
	encoded, err := json.Marshal(cands)
	if err != nil {
		return fmt.Errorf("encoding candidates: %w", err)
	}

	_, err = d.db.Exec(
		"INSERT OR REPLACE INTO lookups (query, candidates, fetched_at) VALUES (?, ?, ?)",
		key, string(encoded), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}
