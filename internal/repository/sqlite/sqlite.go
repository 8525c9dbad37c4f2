// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite sources — no C compiler needed, works everywhere Go works.
//
// The package follows the standard database/sql pattern:
//  1. sql.Open(driverName, dataSourceName) → creates a connection pool
//  2. db.QueryRowContext / db.ExecContext  → runs parameterized queries
//  3. row.Scan(&field1, &field2)           → reads results into Go variables
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: the sqlite package's init() registers itself with
	// database/sql as a driver named "sqlite".
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-entity stores (UserDB, TodoDB,
// ProfileDB) share this pool via the Users/Todos/Profiles accessors; the
// server owns the lifecycle: New opens it, Close (deferred during shutdown)
// flushes the WAL and releases the file lock.
//
// WHY PER-ENTITY STORE TYPES?
// The three repository interfaces all declare Create/GetByID/Delete with
// different signatures, and Go doesn't allow overloading — one receiver
// can't implement them all. A thin typed view per entity keeps one shared
// pool with no name collisions.
type DB struct {
	conn *sql.DB
}

// Users returns the user store view of this database.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Todos returns the to-do item store view of this database.
func (db *DB) Todos() *TodoDB { return &TodoDB{conn: db.conn} }

// Profiles returns the user-profile store view of this database.
func (db *DB) Profiles() *ProfileDB { return &ProfileDB{conn: db.conn} }

// New opens (or creates) the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/todo.db" → file-based database (persistent)
//   - ":memory:"     → in-memory database (used by the repository tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// SQLite allows one writer at a time; capping the pool at a single
	// connection turns driver-level SQLITE_BUSY errors into ordinary
	// queueing. It also makes ":memory:" behave: each pool connection
	// would otherwise get its OWN empty in-memory database.
	conn.SetMaxOpenConns(1)

	// sql.Open doesn't actually connect; Ping forces the first connection so
	// a bad path or permissions problem surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress —
	// essential for a web server where requests hit the DB in parallel.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. They must be ON for the
	// todos.user_id REFERENCES ... ON DELETE CASCADE clause to actually
	// cascade when a user row is deleted.
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

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent — safe to run on every startup.
//
// Three tables, one foreign key, one unique constraint:
//   - users.email is UNIQUE; emails are stored already normalized
//     (lower-cased, trimmed), so the constraint is effectively
//     case-insensitive
//   - todos.user_id cascades: deleting a user deletes their items
//   - user_profiles stands alone, unrelated to users
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			is_active     INTEGER NOT NULL DEFAULT 1
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS todos (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			title   TEXT NOT NULL,
			is_done INTEGER NOT NULL DEFAULT 0,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating todos table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user_profiles (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			email      TEXT NOT NULL,
			birth_date DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating user_profiles table: %w", err)
	}

	return nil
}
