// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single file.
// No separate database server to install, configure, or manage. Perfect for
// single-server deployments, and ":memory:" gives tests a free throwaway DB.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere Go works.
//
// The pattern with database/sql is always:
//  1. sql.Open(driverName, dataSourceName) → creates a pool
//  2. db.QueryContext / db.ExecContext     → runs queries
//  3. rows.Scan(&field1, &field2)          → reads results into Go variables
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The underscore import is a "side-effect only" import. The sqlite
	// package's init() registers itself with database/sql as a driver named
	// "sqlite". After this import, sql.Open("sqlite", ...) knows how to
	// talk to SQLite. This is Go's plugin pattern for database drivers.
	_ "modernc.org/sqlite"
)

// DB owns the sql.DB connection pool and the schema.
//
// The repository implementations live in per-entity stores (UserStore,
// DogStore) that share this pool — both interfaces declare a Create and a
// GetByID, so they can't be methods on one type. Get a store via Users()
// or Dogs().
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/adoption.db"  → file-based database (persistent)
//   - ":memory:"          → in-memory database (great for tests, lost on close)
//
// sql.Open() does NOT actually open a connection — it just creates a pool
// manager. We call Ping() to force an immediate connection and surface a bad
// path or permissions problem at startup instead of on the first query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each pooled connection to ":memory:" would get its OWN empty
	// database — the pool must stay at a single connection for the
	// in-memory case or queries land on different databases.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads WHILE a write is happening.
	// Default SQLite locks the entire database during writes, which would
	// stall a web server handling parallel requests.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite (backwards compatibility).
	// We want referential integrity between dogs and users.
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

// Close closes the database connection pool. Wherever you call New(),
// defer Close() — it flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository backed by this pool.
func (db *DB) Users() *UserStore {
	return &UserStore{db: db}
}

// Dogs returns the dog repository backed by this pool.
func (db *DB) Dogs() *DogStore {
	return &DogStore{db: db}
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS is idempotent, so
// this is safe to run on every startup. For schema EVOLUTION you'd reach for
// golang-migrate; this app's schema is two tables and hasn't needed it.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// adopted_by is NULL exactly while status = 'available'. The CHECK
	// constraint makes the invariant impossible to violate even by a buggy
	// query, not just by disciplined code.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS dogs (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			description     TEXT NOT NULL,
			owner_id        TEXT NOT NULL REFERENCES users(id),
			adopted_by      TEXT REFERENCES users(id),
			adopted_message TEXT NOT NULL DEFAULT '',
			status          TEXT NOT NULL DEFAULT 'available'
			                CHECK (status IN ('available', 'adopted')),
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CHECK ((status = 'adopted') = (adopted_by IS NOT NULL)),
			CHECK (adopted_by IS NULL OR adopted_by != owner_id)
		);
		CREATE INDEX IF NOT EXISTS idx_dogs_status ON dogs(status);
		CREATE INDEX IF NOT EXISTS idx_dogs_owner_id ON dogs(owner_id);
		CREATE INDEX IF NOT EXISTS idx_dogs_adopted_by ON dogs(adopted_by);
	`)
	if err != nil {
		return fmt.Errorf("creating dogs table: %w", err)
	}

	return nil
}
