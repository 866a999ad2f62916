// Package journal provides the SQLite-backed local cache of extraction
// history (~/.local/share/rogueday/journal.db). The server owns the
// canonical journal; this cache makes past runs browsable offline and
// absorbs appends the moment an extraction succeeds.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// DB wraps an SQLite database connection with journal operations.
type DB struct {
	conn *sql.DB
	path string
	mu   sync.RWMutex
}

// DefaultDBPath returns the path to the journal database.
func DefaultDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "rogueday", "journal.db")
}

// Open opens the journal database at the given path.
// It creates the parent directories if they don't exist.
// WAL mode is enabled for concurrent reads.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db := &DB{
		conn: conn,
		path: path,
	}

	return db, nil
}

// OpenDefault opens the journal database at its default location.
func OpenDefault() (*DB, error) {
	return Open(DefaultDBPath())
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn.Close()
}

// Path returns the path to the database file.
func (db *DB) Path() string {
	return db.path
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var currentVersion int
	row := db.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1Extractions},
		{2, migrationV2Settings},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration v%d: %w", m.version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration v%d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Migration SQL statements
const migrationV1Extractions = `
CREATE TABLE IF NOT EXISTS extractions (
	id INTEGER PRIMARY KEY,
	run_id INTEGER NOT NULL UNIQUE,
	run_date TEXT NOT NULL,
	final_xp INTEGER NOT NULL DEFAULT 0,
	xp_before_penalties INTEGER NOT NULL DEFAULT 0,
	penalty_xp INTEGER NOT NULL DEFAULT 0,
	tasks_completed INTEGER NOT NULL DEFAULT 0,
	tasks_failed INTEGER NOT NULL DEFAULT 0,
	tasks_total INTEGER NOT NULL DEFAULT 0,
	total_focus_minutes INTEGER NOT NULL DEFAULT 0,
	t1_completed INTEGER NOT NULL DEFAULT 0,
	t2_completed INTEGER NOT NULL DEFAULT 0,
	t3_completed INTEGER NOT NULL DEFAULT 0,
	t1_failed INTEGER NOT NULL DEFAULT 0,
	t2_failed INTEGER NOT NULL DEFAULT 0,
	t3_failed INTEGER NOT NULL DEFAULT 0,
	completed_with_timer INTEGER NOT NULL DEFAULT 0,
	completed_without_timer INTEGER NOT NULL DEFAULT 0,
	started_at DATETIME NOT NULL,
	extracted_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_extractions_run_date ON extractions(run_date);
`

const migrationV2Settings = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Exec executes a query that doesn't return rows.
func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows.
func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row.
func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn.QueryRow(query, args...)
}

// Transaction runs the given function within a transaction.
func (db *DB) Transaction(fn func(tx *sql.Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// formatTime formats a time.Time for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a time string from SQLite.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// parseNullableTime parses a nullable time string from SQLite.
func parseNullableTime(s sql.NullString) *models.ServerTime {
	if !s.Valid {
		return nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil
	}
	st := models.NewServerTime(t)
	return &st
}
