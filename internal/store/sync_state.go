package store

import (
	"database/sql"
	"errors"
)

// Sync bookkeeping lives in a small key/value table so new markers (last
// refresh time, cursor positions) don't need a migration each.

// GetSyncState returns the value stored under key, or the empty string
// when the key has never been set.
func (db *DB) GetSyncState(key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM sync_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSyncState writes a marker, overwriting any previous value
func (db *DB) SetSyncState(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}

// DeleteSyncState removes a marker
func (db *DB) DeleteSyncState(key string) error {
	_, err := db.Exec(`DELETE FROM sync_state WHERE key = ?`, key)
	return err
}
