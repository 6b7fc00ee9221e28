package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNoAuth is returned when no Strava account is linked
var ErrNoAuth = errors.New("no authentication stored")

// The auth table is a singleton: one linked athlete per install.
const authRowID = 1

// GetAuth returns the linked athlete's tokens
func (db *DB) GetAuth() (*Auth, error) {
	var a Auth
	var expiry int64
	err := db.QueryRow(
		`SELECT athlete_id, access_token, refresh_token, expires_at FROM auth WHERE id = ?`,
		authRowID,
	).Scan(&a.AthleteID, &a.AccessToken, &a.RefreshToken, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAuth
	}
	if err != nil {
		return nil, err
	}
	a.ExpiresAt = time.Unix(expiry, 0)
	return &a, nil
}

// SaveAuth links an athlete, replacing whatever account was stored before
func (db *DB) SaveAuth(a *Auth) error {
	_, err := db.Exec(`
		INSERT INTO auth (id, athlete_id, access_token, refresh_token, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = CURRENT_TIMESTAMP`,
		authRowID, a.AthleteID, a.AccessToken, a.RefreshToken, a.ExpiresAt.Unix())
	return err
}

// UpdateTokens rotates the token pair after an OAuth refresh. The athlete
// and everything else on the row stay as they are; rotating tokens for an
// account that was never linked is ErrNoAuth.
func (db *DB) UpdateTokens(accessToken, refreshToken string, expiresAt time.Time) error {
	res, err := db.Exec(
		`UPDATE auth SET access_token = ?, refresh_token = ?, expires_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		accessToken, refreshToken, expiresAt.Unix(), authRowID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoAuth
	}
	return nil
}

// DeleteAuth unlinks the stored account
func (db *DB) DeleteAuth() error {
	_, err := db.Exec(`DELETE FROM auth WHERE id = ?`, authRowID)
	return err
}
