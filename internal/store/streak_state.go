package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoState is returned when no streak state is stored for an athlete
var ErrNoState = errors.New("no streak state stored")

// ErrStateInvalid is returned when the stored streak state fails
// validation. Callers should treat it like a missing checkpoint and
// recompute from scratch.
var ErrStateInvalid = errors.New("streak state invalid")

// GetStreakState retrieves the streak checkpoint for an athlete.
// A corrupt row yields ErrStateInvalid rather than partial data.
func (db *DB) GetStreakState(athleteID int64) (*StreakState, error) {
	row := db.QueryRow(`
		SELECT athlete_id, current, current_start, last_confirmed,
			longest, longest_start, runs, minimum_days, outdoor_runs,
			total_duration, total_distance
		FROM streak_state
		WHERE athlete_id = ?
	`, athleteID)

	var st StreakState
	err := row.Scan(
		&st.AthleteID, &st.Current, &st.CurrentStart, &st.LastConfirmed,
		&st.Longest, &st.LongestStart, &st.Runs, &st.MinimumDays, &st.OutdoorRuns,
		&st.TotalDuration, &st.TotalDistance,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, err
	}

	if err := validateStreakState(&st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateInvalid, err)
	}
	return &st, nil
}

// SaveStreakState stores or replaces the streak checkpoint for an athlete
func (db *DB) SaveStreakState(st *StreakState) error {
	if err := validateStreakState(st); err != nil {
		return fmt.Errorf("%w: %v", ErrStateInvalid, err)
	}

	_, err := db.Exec(`
		INSERT INTO streak_state (
			athlete_id, current, current_start, last_confirmed,
			longest, longest_start, runs, minimum_days, outdoor_runs,
			total_duration, total_distance, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(athlete_id) DO UPDATE SET
			current = excluded.current,
			current_start = excluded.current_start,
			last_confirmed = excluded.last_confirmed,
			longest = excluded.longest,
			longest_start = excluded.longest_start,
			runs = excluded.runs,
			minimum_days = excluded.minimum_days,
			outdoor_runs = excluded.outdoor_runs,
			total_duration = excluded.total_duration,
			total_distance = excluded.total_distance,
			updated_at = CURRENT_TIMESTAMP
	`,
		st.AthleteID, st.Current, st.CurrentStart, st.LastConfirmed,
		st.Longest, st.LongestStart, st.Runs, st.MinimumDays, st.OutdoorRuns,
		st.TotalDuration, st.TotalDistance,
	)
	return err
}

// DeleteStreakState removes the streak checkpoint for an athlete
func (db *DB) DeleteStreakState(athleteID int64) error {
	_, err := db.Exec("DELETE FROM streak_state WHERE athlete_id = ?", athleteID)
	return err
}

func validateStreakState(st *StreakState) error {
	if st.Current < 0 {
		return fmt.Errorf("negative current streak %d", st.Current)
	}
	if st.Longest < st.Current {
		return fmt.Errorf("longest %d below current %d", st.Longest, st.Current)
	}
	if st.Current > 0 && (st.CurrentStart == "" || st.LastConfirmed == "") {
		return errors.New("active streak missing its dates")
	}
	for _, d := range []string{st.CurrentStart, st.LastConfirmed, st.LongestStart} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("bad date %q", d)
		}
	}
	return nil
}
