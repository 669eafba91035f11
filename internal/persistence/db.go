// Package persistence provides SQLite-based storage for state that must
// survive a restart: the shipyard snapshot and session metadata, plus a
// log of emitted notifications.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/steamraiders/internal/notify"
	"github.com/talgya/steamraiders/internal/shipyard"
)

// shipyardKey is the fixed storage namespace for the shipyard blob.
const shipyardKey = "steamraiders-shipyard"

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		notification_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		variant TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveShipyard stores the shipyard snapshot as an opaque JSON blob under
// the fixed namespace key.
func (db *DB) SaveShipyard(snap shipyard.Snapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode shipyard snapshot: %w", err)
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO blobs (key, value) VALUES (?, ?)",
		shipyardKey, string(blob),
	)
	if err != nil {
		return fmt.Errorf("save shipyard snapshot: %w", err)
	}
	return nil
}

// LoadShipyard restores the shipyard snapshot. ok is false when no
// snapshot has been saved yet.
func (db *DB) LoadShipyard() (shipyard.Snapshot, bool, error) {
	var blob string
	err := db.conn.Get(&blob, "SELECT value FROM blobs WHERE key = ?", shipyardKey)
	if errors.Is(err, sql.ErrNoRows) {
		return shipyard.Snapshot{}, false, nil
	}
	if err != nil {
		return shipyard.Snapshot{}, false, fmt.Errorf("load shipyard snapshot: %w", err)
	}

	var snap shipyard.Snapshot
	if err := json.Unmarshal([]byte(blob), &snap); err != nil {
		return shipyard.Snapshot{}, false, fmt.Errorf("decode shipyard snapshot: %w", err)
	}
	return snap, true, nil
}

// SaveMeta stores a key-value pair in session metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. ok is false for unknown keys.
func (db *DB) GetMeta(key string) (string, bool, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// AppendNotifications writes emitted notifications to the log.
func (db *DB) AppendNotifications(items []notify.Notification) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, n := range items {
		_, err := tx.Exec(
			"INSERT INTO notifications (notification_id, title, description, variant, created_at) VALUES (?, ?, ?, ?, ?)",
			n.ID, n.Title, n.Description, string(n.Variant), n.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentNotifications returns the most recent N logged notifications,
// newest first.
func (db *DB) RecentNotifications(limit int) ([]notify.Notification, error) {
	rows, err := db.conn.Queryx(
		"SELECT notification_id, title, description, variant, created_at FROM notifications ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notify.Notification
	for rows.Next() {
		var n notify.Notification
		var variant string
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &variant, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Variant = notify.Variant(variant)
		out = append(out, n)
	}
	return out, rows.Err()
}
