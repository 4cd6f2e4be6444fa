// Package store persists analysis runs to SQLite so readiness scores can
// be compared over time.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// DB wraps a sql.DB connection to the gitsight SQLite database.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the SQLite database at the given path, creating
// the parent directory if needed, and migrates the schema.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// WAL keeps history reads cheap while a run is being written.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// OpenInMemory opens an in-memory database, useful for testing.
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate runs forward migrations to bring the schema up to date.
func (db *DB) migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}
	return nil
}

func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			analyzed_at      TEXT NOT NULL,
			username         TEXT NOT NULL,
			readiness_score  INTEGER NOT NULL,
			tier             TEXT NOT NULL,
			repo_count       INTEGER NOT NULL,
			primary_language TEXT,
			version          TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS repo_scores (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          INTEGER NOT NULL REFERENCES runs(id),
			repo            TEXT NOT NULL,
			composite_score INTEGER NOT NULL,
			rating          TEXT NOT NULL,
			code_structure  INTEGER NOT NULL,
			testing_ci      INTEGER NOT NULL,
			readme          INTEGER NOT NULL,
			project_value   INTEGER NOT NULL,
			deployability   INTEGER NOT NULL,
			complexity      INTEGER NOT NULL,
			security        INTEGER NOT NULL,
			flagged         BOOLEAN NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_username ON runs(username)`,
		`CREATE INDEX IF NOT EXISTS idx_repo_scores_run ON repo_scores(run_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}
	return tx.Commit()
}
