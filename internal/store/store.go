package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/strivecli/strive/internal/config"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the strive database.
func Open() (*DB, error) {
	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("creating data dirs: %w", err)
	}
	return OpenPath(paths.DBFile)
}

// OpenPath opens a database at an explicit path. Used by tests with temp
// files and in-memory databases.
func OpenPath(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the raw sql.DB for direct queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// migrate runs all schema migrations.
func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			note TEXT DEFAULT '',
			icon_key TEXT DEFAULT '',
			colour TEXT DEFAULT '',
			start_date TEXT NOT NULL,
			target_date TEXT,
			starting_number REAL,
			target_number REAL,
			unit TEXT DEFAULT '',
			cumulative INTEGER DEFAULT 0,
			reached_at TEXT,
			sort_order INTEGER DEFAULT 0,
			plan_enabled INTEGER DEFAULT 0,
			plan_interval TEXT DEFAULT '',
			plan_days TEXT DEFAULT '',
			calendar_name TEXT DEFAULT '',
			plan_skip_dates TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			goal_id TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
			date TEXT NOT NULL,
			value REAL,
			note TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_goal_date ON records(goal_id, date)`,
		// Key-value store for settings (hide-completed, export snapshot).
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	// ALTER TABLE migrations cannot use IF NOT EXISTS — handle idempotently.
	// SQLite raises "duplicate column name: X" when a column already exists,
	// and the modernc.org/sqlite pure-Go driver preserves that exact wording.
	alterMigrations := []string{
		// Legacy icon field from the v1 schema; see the backfill below.
		`ALTER TABLE goals ADD COLUMN icon_value TEXT`,
	}
	for _, m := range alterMigrations {
		if _, err := db.conn.Exec(m); err != nil {
			if !strings.Contains(err.Error(), "duplicate column name") {
				return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
			}
		}
	}

	// Legacy migration: goals saved before icon_key existed carry icon_value
	// instead. Adopt it once so the in-memory shape is always canonical.
	if _, err := db.conn.Exec(
		`UPDATE goals SET icon_key = icon_value
		 WHERE (icon_key IS NULL OR icon_key = '')
		   AND icon_value IS NOT NULL AND icon_value != ''`,
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// GetKV returns a settings value by key. ok is false when the key is absent.
func (db *DB) GetKV(key string) (value string, ok bool, err error) {
	err = db.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetKV stores a settings value.
func (db *DB) SetKV(key, value string) error {
	_, err := db.conn.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	return err
}

// AllKV returns the full settings map, for the export bundle snapshot.
// Returns nil when no settings exist.
func (db *DB) AllKV() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT key, value FROM kv`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out map[string]string
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[k] = v
	}
	return out, rows.Err()
}
