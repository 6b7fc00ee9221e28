package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"runstreak/internal/strava"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch recent activities and recompute the streak",
	Long: `Sync pulls recent activities from Strava, merges them into the local
cache and recomputes the streak. Meant for cron or a shell prompt; the
dashboard refreshes on its own.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := setup(ctx)
	if errors.Is(err, errConfigIncomplete) {
		return nil
	}
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Println("Syncing with Strava...")
	result, err := app.refresh.Refresh(ctx, func(fetched int) {
		fmt.Printf("  fetched %d activities\r", fetched)
	})
	if errors.Is(err, strava.ErrUnauthorized) {
		fmt.Println("Strava rejected the stored credentials.")
		if err := app.reauthenticate(ctx); err != nil {
			return err
		}
		result, err = app.refresh.Refresh(ctx, nil)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	if result.Stale {
		fmt.Println("Strava unreachable - streak computed from cached activities.")
	} else {
		fmt.Printf("Fetched %d activities.\n", result.Fetched)
	}

	st := result.Data.State
	fmt.Printf("Current streak: %d days", st.Current)
	if st.Current > 0 {
		fmt.Printf(" (since %s)", st.CurrentStart)
	}
	fmt.Println()
	fmt.Printf("Longest streak: %d days\n", st.Longest)

	if result.MilestoneMoment {
		fmt.Println()
		if result.DaysToNext == 1 {
			fmt.Printf("★ Run today to hit %d days!\n", result.Milestone.Days)
		} else {
			fmt.Printf("★ %s\n", result.Milestone.Text)
		}
	}

	return nil
}
