package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"runstreak/internal/streak"
)

// Config represents the application configuration
type Config struct {
	Strava     StravaConfig      `json:"strava"`
	Goal       GoalConfig        `json:"goal"`
	Milestones []MilestoneConfig `json:"milestones,omitempty"`
	Sync       SyncConfig        `json:"sync"`
}

// StravaConfig holds Strava API credentials
type StravaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// GoalConfig defines what counts as keeping the streak alive on a day
type GoalConfig struct {
	MinimumDuration int     `json:"minimum_duration"`  // minutes
	GraceDuration   int     `json:"grace_duration"`    // minutes below the goal still allowed
	GraceDistanceKm float64 `json:"grace_distance_km"` // distance that earns the grace
	MinimumDayBand  int     `json:"minimum_day_band"`  // minutes above the goal still flagged "minimum"
}

// MilestoneConfig is one celebrated streak length
type MilestoneConfig struct {
	Days int    `json:"days"`
	Text string `json:"text"`
	Size string `json:"size"` // "minor" or "major"
}

// SyncConfig holds activity sync settings
type SyncConfig struct {
	InitialLoadMonths int `json:"initial_load_months"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Goal: GoalConfig{
			MinimumDuration: 25,
			GraceDuration:   5,
			GraceDistanceKm: 5,
			MinimumDayBand:  5,
		},
		Sync: SyncConfig{
			InitialLoadMonths: 12,
		},
	}
}

// Load reads the configuration from ~/.runstreak/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return loadPath(path)
}

func loadPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Goal.MinimumDuration == 0 {
		cfg.Goal.MinimumDuration = defaults.Goal.MinimumDuration
	}
	if cfg.Goal.GraceDuration == 0 {
		cfg.Goal.GraceDuration = defaults.Goal.GraceDuration
	}
	if cfg.Goal.GraceDistanceKm == 0 {
		cfg.Goal.GraceDistanceKm = defaults.Goal.GraceDistanceKm
	}
	if cfg.Goal.MinimumDayBand == 0 {
		cfg.Goal.MinimumDayBand = defaults.Goal.MinimumDayBand
	}
	if cfg.Sync.InitialLoadMonths == 0 {
		cfg.Sync.InitialLoadMonths = defaults.Sync.InitialLoadMonths
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.runstreak/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Strava = StravaConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Strava.ClientID == "" || c.Strava.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("strava.client_id is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.ClientSecret == "" || c.Strava.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("strava.client_secret is required - get it from https://www.strava.com/settings/api")
	}

	if c.Goal.MinimumDuration <= 0 {
		return fmt.Errorf("goal.minimum_duration must be positive, got %d", c.Goal.MinimumDuration)
	}
	if c.Goal.GraceDuration < 0 || c.Goal.GraceDuration > c.Goal.MinimumDuration {
		return fmt.Errorf("goal.grace_duration must be between 0 and the minimum duration, got %d", c.Goal.GraceDuration)
	}
	if c.Goal.GraceDistanceKm < 0 {
		return fmt.Errorf("goal.grace_distance_km must not be negative, got %v", c.Goal.GraceDistanceKm)
	}
	if c.Goal.MinimumDayBand < 0 {
		return fmt.Errorf("goal.minimum_day_band must not be negative, got %d", c.Goal.MinimumDayBand)
	}
	if c.Sync.InitialLoadMonths <= 0 {
		return fmt.Errorf("sync.initial_load_months must be positive, got %d", c.Sync.InitialLoadMonths)
	}

	for _, m := range c.Milestones {
		if m.Days <= 0 {
			return fmt.Errorf("milestone days must be positive, got %d", m.Days)
		}
		if m.Size != "" && m.Size != "minor" && m.Size != "major" {
			return fmt.Errorf("milestone size must be \"minor\" or \"major\", got %q", m.Size)
		}
	}

	return nil
}

// StreakGoal converts the configured goal to the engine's terms
func (c *Config) StreakGoal() streak.Goal {
	return streak.Goal{
		MinimumDuration: c.Goal.MinimumDuration,
		GraceDuration:   c.Goal.GraceDuration,
		GraceDistanceKm: c.Goal.GraceDistanceKm,
		MinimumDayBand:  c.Goal.MinimumDayBand,
	}
}

// MilestoneTable converts configured milestones to the engine's table,
// sorted ascending. An empty config falls back to the built-in set.
func (c *Config) MilestoneTable() streak.MilestoneTable {
	if len(c.Milestones) == 0 {
		return streak.DefaultMilestones()
	}
	table := make(streak.MilestoneTable, 0, len(c.Milestones))
	for _, m := range c.Milestones {
		size := streak.SizeMinor
		if m.Size == "major" {
			size = streak.SizeMajor
		}
		table = append(table, streak.Milestone{Days: m.Days, Text: m.Text, Size: size})
	}
	table.Sort()
	return table
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".runstreak", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".runstreak"), nil
}
