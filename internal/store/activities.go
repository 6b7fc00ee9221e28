package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrActivityNotFound is returned when an activity doesn't exist
var ErrActivityNotFound = errors.New("activity not found")

// UpsertActivity inserts or updates an activity
func (db *DB) UpsertActivity(a *Activity) error {
	_, err := db.Exec(`
		INSERT INTO activities (
			id, athlete_id, name, type, sport_type, start_date, start_date_local,
			timezone, distance, moving_time, elapsed_time, trainer, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			name = excluded.name,
			type = excluded.type,
			sport_type = excluded.sport_type,
			start_date = excluded.start_date,
			start_date_local = excluded.start_date_local,
			timezone = excluded.timezone,
			distance = excluded.distance,
			moving_time = excluded.moving_time,
			elapsed_time = excluded.elapsed_time,
			trainer = excluded.trainer,
			updated_at = CURRENT_TIMESTAMP
	`,
		a.ID, a.AthleteID, a.Name, a.Type, a.SportType,
		a.StartDate.Format(time.RFC3339), a.StartDateLocal.Format(time.RFC3339), a.Timezone,
		a.Distance, a.MovingTime, a.ElapsedTime, boolToInt(a.Trainer),
	)
	return err
}

// GetActivity retrieves an activity by ID
func (db *DB) GetActivity(id int64) (*Activity, error) {
	row := db.QueryRow(activitySelect+` WHERE id = ?`, id)
	a, err := scanActivity(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListActivitiesSince returns an athlete's activities whose local start
// date falls on or after the given instant, ordered oldest first. A zero
// since returns the full history.
func (db *DB) ListActivitiesSince(athleteID int64, since time.Time) ([]Activity, error) {
	rows, err := db.Query(activitySelect+`
		WHERE athlete_id = ? AND start_date_local >= ?
		ORDER BY start_date_local ASC
	`, athleteID, since.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// CountActivities returns the number of stored activities for an athlete
func (db *DB) CountActivities(athleteID int64) (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM activities WHERE athlete_id = ?", athleteID).Scan(&count)
	return count, err
}

// DeleteActivities removes all stored activities for an athlete
func (db *DB) DeleteActivities(athleteID int64) error {
	_, err := db.Exec("DELETE FROM activities WHERE athlete_id = ?", athleteID)
	return err
}

const activitySelect = `
	SELECT id, athlete_id, name, type, sport_type, start_date, start_date_local,
		timezone, distance, moving_time, elapsed_time, trainer
	FROM activities`

// scanActivity scans a single activity given a row's Scan function
func scanActivity(scan func(...any) error) (*Activity, error) {
	var a Activity
	var startDate, startDateLocal string
	var timezone sql.NullString
	var trainer int

	err := scan(
		&a.ID, &a.AthleteID, &a.Name, &a.Type, &a.SportType,
		&startDate, &startDateLocal, &timezone,
		&a.Distance, &a.MovingTime, &a.ElapsedTime, &trainer,
	)
	if err != nil {
		return nil, err
	}

	var parseErr error
	a.StartDate, parseErr = time.Parse(time.RFC3339, startDate)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date %q: %w", startDate, parseErr)
	}
	a.StartDateLocal, parseErr = time.Parse(time.RFC3339, startDateLocal)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date_local %q: %w", startDateLocal, parseErr)
	}
	a.Timezone = timezone.String
	a.Trainer = trainer == 1

	return &a, nil
}

// scanActivities scans multiple activities from rows
func scanActivities(rows *sql.Rows) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
