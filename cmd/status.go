package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"runstreak/internal/store"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the streak from the local cache (no network)",
	Long: `Status prints the last computed streak without talking to Strava,
so it is safe to call from a shell prompt. Run 'runstreak sync' to
bring it up to date first.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
}

// statusData is the cached streak snapshot
type statusData struct {
	Current       int    `json:"current"`
	CurrentStart  string `json:"current_start,omitempty"`
	LastConfirmed string `json:"last_confirmed,omitempty"`
	Longest       int    `json:"longest"`
	Runs          int    `json:"runs"`
	TotalDuration int    `json:"total_duration_minutes"`
}

func runStatus(_ *cobra.Command, _ []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	storedAuth, err := db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		fmt.Println("No Strava account linked. Run 'runstreak' to get started.")
		return nil
	}
	if err != nil {
		return err
	}

	st, err := db.GetStreakState(storedAuth.AthleteID)
	if errors.Is(err, store.ErrNoState) || errors.Is(err, store.ErrStateInvalid) {
		fmt.Println("No streak computed yet. Run 'runstreak sync' first.")
		return nil
	}
	if err != nil {
		return err
	}

	data := statusData{
		Current:       st.Current,
		CurrentStart:  st.CurrentStart,
		LastConfirmed: st.LastConfirmed,
		Longest:       st.Longest,
		Runs:          st.Runs,
		TotalDuration: st.TotalDuration,
	}

	if statusJSON {
		return json.NewEncoder(os.Stdout).Encode(data)
	}

	fmt.Printf("Streak: %d days", data.Current)
	if data.CurrentStart != "" {
		fmt.Printf(" (since %s)", data.CurrentStart)
	}
	fmt.Println()
	if data.LastConfirmed != "" {
		fmt.Printf("Last confirmed run day: %s\n", data.LastConfirmed)
	}
	fmt.Printf("Longest: %d days\n", data.Longest)
	return nil
}
