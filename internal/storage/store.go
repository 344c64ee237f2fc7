// Package storage provides SQLite-based persistence for the player profile,
// settings, save slots, and run history. Uses the pure-Go modernc.org/sqlite
// driver to avoid CGO dependencies.
//
// A store is either live (file-backed) or degraded (in-memory fallback with
// the same schema). A missing or unreadable database file never crashes the
// launch; it degrades. Only a migration failure aborts, because running on an
// unknown schema risks silent corruption.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const (
	openAttempts = 3
	openBackoff  = 100 * time.Millisecond
)

// Store manages the single SQLite connection. All queries go through the DAL;
// no other component may open a second connection.
type Store struct {
	db       *sqlx.DB
	logger   *log.Logger
	degraded bool
}

// Open creates or opens the database at the given path and applies pending
// migrations. The path may start with "~". If the file cannot be opened after
// a bounded retry, the store falls back to an in-memory database and reports
// itself as degraded. A migration failure is returned as *MigrationError and
// should abort startup.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	db, err := openFile(dbPath)
	degraded := false
	if err != nil {
		logger.Warn("database unavailable, falling back to in-memory store",
			"path", dbPath, "error", err)
		db, err = sqlx.Open("sqlite", ":memory:")
		if err != nil {
			return nil, fmt.Errorf("storage: cannot open fallback store: %w", err)
		}
		degraded = true
	}

	// A single connection serializes all writes and keeps the in-memory
	// fallback on one database instance.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, logger: logger, degraded: degraded}

	if err := store.ApplyPendingMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// OpenMemory opens a migrated in-memory store. Used by tests and as the
// explicit degraded-mode constructor.
func OpenMemory(logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open in-memory store: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, logger: logger, degraded: true}
	if err := store.ApplyPendingMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// openFile opens the file-backed database with a bounded retry, converting an
// indefinite hang or transient lock into a deterministic failure.
func openFile(dbPath string) (*sqlx.DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("storage: empty database path")
	}

	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= openAttempts; attempt++ {
		db, err := sqlx.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
		if err == nil {
			if err = db.Ping(); err == nil {
				return db, nil
			}
			db.Close()
		}
		lastErr = err
		if attempt < openAttempts {
			time.Sleep(openBackoff * time.Duration(attempt))
		}
	}
	return nil, fmt.Errorf("storage: cannot open database after %d attempts: %w", openAttempts, lastErr)
}

// Live reports whether persistence is file-backed. When false, progress will
// not survive a restart and the UI should warn the player.
func (s *Store) Live() bool {
	return !s.degraded
}

// DB exposes the connection to the DAL. No other package may use it.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// SchemaVersion returns the highest applied migration version, or 0 if no
// migrations have been recorded.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	err := s.db.Get(&version, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read schema version: %w", err)
	}
	return version, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
