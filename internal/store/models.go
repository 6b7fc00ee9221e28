package store

import "time"

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64     `db:"athlete_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// Activity represents a Strava activity summary
type Activity struct {
	ID             int64     `db:"id"`
	AthleteID      int64     `db:"athlete_id"`
	Name           string    `db:"name"`
	Type           string    `db:"type"`
	SportType      string    `db:"sport_type"`
	StartDate      time.Time `db:"start_date"`
	StartDateLocal time.Time `db:"start_date_local"`
	Timezone       string    `db:"timezone"`
	Distance       float64   `db:"distance"`     // meters
	MovingTime     int       `db:"moving_time"`  // seconds
	ElapsedTime    int       `db:"elapsed_time"` // seconds
	Trainer        bool      `db:"trainer"`
}

// StreakState is the persisted streak checkpoint for an athlete. Dates
// are stored as YYYY-MM-DD strings, with the empty string standing in
// for "no date yet".
type StreakState struct {
	AthleteID     int64   `db:"athlete_id"`
	Current       int     `db:"current"`
	CurrentStart  string  `db:"current_start"`
	LastConfirmed string  `db:"last_confirmed"`
	Longest       int     `db:"longest"`
	LongestStart  string  `db:"longest_start"`
	Runs          int     `db:"runs"`
	MinimumDays   int     `db:"minimum_days"`
	OutdoorRuns   int     `db:"outdoor_runs"`
	TotalDuration int     `db:"total_duration"` // minutes
	TotalDistance float64 `db:"total_distance"` // km
}
