package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			athlete_id INTEGER NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Activities (summary data from /athlete/activities)
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			sport_type TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL,
			start_date_local TEXT NOT NULL,
			timezone TEXT,
			distance REAL NOT NULL,
			moving_time INTEGER NOT NULL,
			elapsed_time INTEGER NOT NULL,
			trainer INTEGER NOT NULL DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_start_date_local ON activities(start_date_local)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_athlete ON activities(athlete_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_type ON activities(type)`,

		// Streak state (one row per athlete, the warm-start checkpoint)
		`CREATE TABLE IF NOT EXISTS streak_state (
			athlete_id INTEGER PRIMARY KEY,
			current INTEGER NOT NULL,
			current_start TEXT NOT NULL,
			last_confirmed TEXT NOT NULL,
			longest INTEGER NOT NULL,
			longest_start TEXT NOT NULL,
			runs INTEGER NOT NULL,
			minimum_days INTEGER NOT NULL,
			outdoor_runs INTEGER NOT NULL,
			total_duration INTEGER NOT NULL,
			total_distance REAL NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Sync State (key-value store for sync tracking)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
