// Package sqlite provides SQLite-based persistent storage for Upward.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store exposes all record operations. A Store is bound either to the
// database itself or to an open transaction (see DB.WithTx), so the
// orchestrator can apply a whole decision atomically.
type Store struct {
	q querier
}

// DB wraps a SQLite connection with WAL mode and migrations.
// DB embeds a Store bound to the connection for non-transactional use.
type DB struct {
	*Store
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	// modernc's driver takes pragmas as _pragma=name(value) pairs.
	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{Store: &Store{q: db}, db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// WithTx runs fn against a transaction-bound Store. All writes inside fn
// commit or roll back together — the engine relies on this so XP, streak
// and badge changes per trigger are all-or-nothing.
func (d *DB) WithTx(fn func(*Store) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Store{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Engine state: key-value store for xp and streak scalars
		`CREATE TABLE IF NOT EXISTS progress (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Earned badges — monotonic, insert-only
		`CREATE TABLE IF NOT EXISTS badges (
			id        TEXT PRIMARY KEY,
			earned_at INTEGER NOT NULL
		)`,

		// Append-only XP journal with running balance
		`CREATE TABLE IF NOT EXISTS xp_journal (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			source    TEXT NOT NULL,
			amount    INTEGER NOT NULL,
			balance   INTEGER NOT NULL,
			detail    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_ts ON xp_journal(timestamp)`,

		// Engine event feed for the UI
		`CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			kind       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			seen       BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at)`,

		// Goals own actions; deleting a goal cascades to its actions
		`CREATE TABLE IF NOT EXISTS goals (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			category   TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS actions (
			id           TEXT PRIMARY KEY,
			goal_id      TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
			title        TEXT NOT NULL,
			position     INTEGER NOT NULL DEFAULT 0,
			done         BOOLEAN DEFAULT 0,
			created_at   INTEGER NOT NULL,
			completed_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_actions_goal ON actions(goal_id)`,

		// Wins keep their goal link nullable so goal deletion can unlink
		`CREATE TABLE IF NOT EXISTS wins (
			id          TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			size        TEXT NOT NULL,
			emotion     INTEGER NOT NULL DEFAULT 3,
			goal_id     TEXT,
			action_id   TEXT,
			category    TEXT NOT NULL DEFAULT '',
			created_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wins_created ON wins(created_at)`,

		// Accepted challenges with advisory expiry and reflection
		`CREATE TABLE IF NOT EXISTS challenges (
			id           TEXT PRIMARY KEY,
			template_id  TEXT NOT NULL,
			title        TEXT NOT NULL,
			category     TEXT NOT NULL,
			difficulty   TEXT NOT NULL,
			duration     TEXT NOT NULL,
			reward_xp    INTEGER NOT NULL,
			active       BOOLEAN DEFAULT 1,
			completed    BOOLEAN DEFAULT 0,
			started_at   INTEGER NOT NULL,
			expires_at   INTEGER NOT NULL,
			completed_at INTEGER,
			notes        TEXT NOT NULL DEFAULT '',
			emotion      INTEGER NOT NULL DEFAULT 0,
			photo_ref    TEXT NOT NULL DEFAULT '',
			voice_ref    TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_challenges_expires ON challenges(expires_at)`,

		// Relationships own interactions
		`CREATE TABLE IF NOT EXISTS relationships (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			category   TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id              TEXT PRIMARY KEY,
			relationship_id TEXT NOT NULL REFERENCES relationships(id) ON DELETE CASCADE,
			type            TEXT NOT NULL,
			initiated_by    TEXT NOT NULL,
			notes           TEXT NOT NULL DEFAULT '',
			created_at      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_rel ON interactions(relationship_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
