// Package store persists extraction sessions, lessons, and the capped
// session event log in SQLite. Retention is sweep-based: expired rows
// are purged when Sweep runs, never proactively.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "lessonkit.db"

type Store struct {
	*sql.DB
	path string
}

// Open opens or creates the database next to the binary.
func Open() (*Store, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	return OpenAt(filepath.Join(filepath.Dir(execPath), DefaultDBName))
}

// OpenAt opens or creates the database at dbPath and ensures the
// schema exists.
func OpenAt(dbPath string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{DB: sqlDB, path: dbPath}
	if err := s.ensureSchemaExists(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) ensureSchemaExists() error {
	var tableName string
	err := s.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='sessions'").Scan(&tableName)
	if err == sql.ErrNoRows {
		return s.InitSchema()
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// InitSchema creates all tables.
func (s *Store) InitSchema() error {
	_, err := s.Exec(schema)
	return err
}
