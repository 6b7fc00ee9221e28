package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"runstreak/internal/streak"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Goal.MinimumDuration != 25 {
		t.Errorf("Goal.MinimumDuration = %d, want 25", cfg.Goal.MinimumDuration)
	}
	if cfg.Goal.GraceDuration != 5 {
		t.Errorf("Goal.GraceDuration = %d, want 5", cfg.Goal.GraceDuration)
	}
	if cfg.Goal.GraceDistanceKm != 5 {
		t.Errorf("Goal.GraceDistanceKm = %v, want 5", cfg.Goal.GraceDistanceKm)
	}
	if cfg.Goal.MinimumDayBand != 5 {
		t.Errorf("Goal.MinimumDayBand = %d, want 5", cfg.Goal.MinimumDayBand)
	}
	if cfg.Sync.InitialLoadMonths != 12 {
		t.Errorf("Sync.InitialLoadMonths = %d, want 12", cfg.Sync.InitialLoadMonths)
	}

	// Strava config should be empty by default
	if cfg.Strava.ClientID != "" || cfg.Strava.ClientSecret != "" {
		t.Error("Strava credentials should be empty by default")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.Strava = StravaConfig{ClientID: "12345", ClientSecret: "secret"}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "empty client id",
			mutate:      func(c *Config) { c.Strava.ClientID = "" },
			errContains: "client_id",
		},
		{
			name:        "placeholder client secret",
			mutate:      func(c *Config) { c.Strava.ClientSecret = "YOUR_CLIENT_SECRET" },
			errContains: "client_secret",
		},
		{
			name:        "zero minimum duration",
			mutate:      func(c *Config) { c.Goal.MinimumDuration = 0 },
			errContains: "minimum_duration",
		},
		{
			name:        "grace exceeding the minimum",
			mutate:      func(c *Config) { c.Goal.GraceDuration = 30 },
			errContains: "grace_duration",
		},
		{
			name:        "negative grace distance",
			mutate:      func(c *Config) { c.Goal.GraceDistanceKm = -1 },
			errContains: "grace_distance_km",
		},
		{
			name:        "zero initial load",
			mutate:      func(c *Config) { c.Sync.InitialLoadMonths = 0 },
			errContains: "initial_load_months",
		},
		{
			name: "milestone with bad size",
			mutate: func(c *Config) {
				c.Milestones = []MilestoneConfig{{Days: 10, Text: "ten", Size: "huge"}}
			},
			errContains: "size",
		},
		{
			name: "milestone with zero days",
			mutate: func(c *Config) {
				c.Milestones = []MilestoneConfig{{Days: 0, Text: "zero"}}
			},
			errContains: "days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.errContains)
			}
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// Only credentials present; goal and sync settings omitted entirely
	raw := `{"strava": {"client_id": "12345", "client_secret": "secret"}}`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadPath(path)
	if err != nil {
		t.Fatalf("loadPath: %v", err)
	}

	if cfg.Strava.ClientID != "12345" {
		t.Errorf("ClientID = %q", cfg.Strava.ClientID)
	}
	if cfg.Goal.MinimumDuration != 25 || cfg.Goal.GraceDuration != 5 {
		t.Errorf("goal defaults not applied: %+v", cfg.Goal)
	}
	if cfg.Sync.InitialLoadMonths != 12 {
		t.Errorf("sync defaults not applied: %+v", cfg.Sync)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := loadPath(filepath.Join(t.TempDir(), "absent.json")); err != ErrNoConfig {
		t.Errorf("loadPath = %v, want ErrNoConfig", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadPath(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestStreakGoal(t *testing.T) {
	cfg := DefaultConfig()
	goal := cfg.StreakGoal()
	want := streak.Goal{MinimumDuration: 25, GraceDuration: 5, GraceDistanceKm: 5, MinimumDayBand: 5}
	if goal != want {
		t.Errorf("StreakGoal() = %+v, want %+v", goal, want)
	}
}

func TestMilestoneTable(t *testing.T) {
	var cfg Config
	if len(cfg.MilestoneTable()) == 0 {
		t.Error("empty config should fall back to the built-in milestones")
	}

	cfg.Milestones = []MilestoneConfig{
		{Days: 30, Text: "a month", Size: "major"},
		{Days: 7, Text: "a week"},
	}
	table := cfg.MilestoneTable()
	if len(table) != 2 {
		t.Fatalf("table has %d entries, want 2", len(table))
	}
	if table[0].Days != 7 || table[1].Days != 30 {
		t.Errorf("table not sorted ascending: %+v", table)
	}
	if table[0].Size != streak.SizeMinor {
		t.Errorf("unsized milestone should default to minor, got %q", table[0].Size)
	}
	if table[1].Size != streak.SizeMajor {
		t.Errorf("size = %q, want major", table[1].Size)
	}
}
