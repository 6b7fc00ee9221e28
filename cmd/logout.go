package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"runstreak/internal/store"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Unlink Strava and drop all cached data",
	Long: `Logout removes the stored tokens, the cached activities and the
computed streak. The next run starts from a clean slate with a fresh
OAuth flow and a full history load.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(_ *cobra.Command, _ []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	storedAuth, err := db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		fmt.Println("No Strava account linked.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := db.DeleteActivities(storedAuth.AthleteID); err != nil {
		return fmt.Errorf("deleting activities: %w", err)
	}
	if err := db.DeleteStreakState(storedAuth.AthleteID); err != nil {
		return fmt.Errorf("deleting streak state: %w", err)
	}
	if err := db.DeleteSyncState("last_refresh"); err != nil {
		return fmt.Errorf("deleting sync state: %w", err)
	}
	if err := db.DeleteAuth(); err != nil {
		return fmt.Errorf("deleting auth: %w", err)
	}

	fmt.Printf("Unlinked athlete %d and dropped the cache.\n", storedAuth.AthleteID)
	return nil
}
