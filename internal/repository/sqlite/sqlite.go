// Package sqlite implements the repository interfaces on an embedded
// SQLite database via the pure-Go modernc.org/sqlite driver.
//
// The database is a single file (or ":memory:" in tests). WAL mode is
// enabled so reads proceed concurrently with a write, and foreign keys
// are switched on so deleting a topic cascades to its posts.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces declared in the repository package.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath, configures it, and runs the schema
// migration. Use ":memory:" for an ephemeral database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// SQLite allows one writer at a time, and the pragmas below are
	// per-connection. A single pooled connection keeps every statement
	// on the configured connection (and keeps ":memory:" a single
	// database rather than one per connection).
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite; the posts→topics
	// cascade depends on them.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this right
// after New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// safe to run on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS registrations (
			id            TEXT PRIMARY KEY,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			cohort        TEXT NOT NULL DEFAULT '',
			campus        TEXT NOT NULL DEFAULT '',
			date_of_birth DATETIME,
			motivation    TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_registrations_created_at
			ON registrations(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating registrations table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id              TEXT PRIMARY KEY,
			email           TEXT NOT NULL UNIQUE,
			first_name      TEXT NOT NULL DEFAULT '',
			last_name       TEXT NOT NULL DEFAULT '',
			password_usable INTEGER NOT NULL DEFAULT 0,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating accounts table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS topics (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			category    TEXT NOT NULL DEFAULT 'general',
			author_name TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS posts (
			id          TEXT PRIMARY KEY,
			topic_id    TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
			author_name TEXT NOT NULL DEFAULT '',
			content     TEXT NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_posts_topic_id ON posts(topic_id);
		CREATE INDEX IF NOT EXISTS idx_posts_author_name
			ON posts(author_name COLLATE NOCASE);
		CREATE INDEX IF NOT EXISTS idx_topics_author_name
			ON topics(author_name COLLATE NOCASE);
	`)
	if err != nil {
		return fmt.Errorf("creating forum tables: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. The driver exposes the extended result code; 2067 is
// SQLITE_CONSTRAINT_UNIQUE.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
