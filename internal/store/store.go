// Package store persists memoized results in SQLite so that a restarted
// dashboard does not recompute them.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/mattn/go-sqlite3"

	"github.com/ademuri/spotify-eda/internal/cache"
)

const createTablesQuery = `
CREATE TABLE IF NOT EXISTS CacheEntry (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL,
  created DATETIME NOT NULL
);
`

// Store is a cache.Cache backed by a SQLite database.
type Store struct {
	db *sql.DB
}

var _ cache.Cache = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	exists, err := dbExists(db)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if _, err := db.Exec(createTablesQuery); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

func dbExists(db *sql.DB) (bool, error) {
	row := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'CacheEntry'")
	var name string
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking db existence: %w", err)
	}
	return true, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	row := s.db.QueryRow("SELECT value FROM CacheEntry WHERE key = ?", key)
	var value []byte
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", key, cache.ErrMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache entry %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any earlier entry. Writes that find
// the database busy or locked are retried.
func (s *Store) Set(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	err := retry.Do(
		func() error {
			_, err := s.db.Exec(
				"INSERT OR REPLACE INTO CacheEntry (key, value, created) VALUES (?, ?, ?)",
				key, value, time.Now().UTC())
			return err
		},
		retry.RetryIf(isBusy),
		retry.Attempts(5),
		retry.Delay(20*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}

// Purge deletes every entry and reports how many were removed.
func (s *Store) Purge() (int64, error) {
	var removed int64
	err := retry.Do(
		func() error {
			result, err := s.db.Exec("DELETE FROM CacheEntry")
			if err != nil {
				return err
			}
			removed, err = result.RowsAffected()
			return err
		},
		retry.RetryIf(isBusy),
		retry.Attempts(5),
		retry.Delay(20*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	return removed, nil
}

func (s *Store) Len() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM CacheEntry").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return count, nil
}

func isBusy(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrBusy || serr.Code == sqlite3.ErrLocked
	}
	return false
}
