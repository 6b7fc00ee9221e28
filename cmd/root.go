package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/spf13/cobra"

	"runstreak/internal/auth"
	"runstreak/internal/config"
	"runstreak/internal/service"
	"runstreak/internal/store"
	"runstreak/internal/strava"
	"runstreak/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "runstreak",
	Short: "Keep your run streak alive",
	Long: `runstreak tracks a daily running streak over your Strava history:
25 minutes a day keeps the streak alive (20 is enough if you cover 5 km).`,
	RunE:          runDashboard,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := setup(ctx)
	if errors.Is(err, errConfigIncomplete) {
		return nil // setup already printed instructions
	}
	if err != nil {
		return err
	}
	defer app.Close()

	for {
		err := tui.NewApp(app.refresh, app.cfg.StreakGoal()).Run()
		if !errors.Is(err, tui.ErrReauthNeeded) {
			return err
		}
		fmt.Println("Strava rejected the stored credentials. Re-authenticating...")
		if err := app.reauthenticate(ctx); err != nil {
			return err
		}
	}
}

// errConfigIncomplete signals that setup stopped to let the user fill
// in the config file.
var errConfigIncomplete = errors.New("config incomplete")

// appContext bundles everything a command needs after setup
type appContext struct {
	cfg       *config.Config
	db        *store.DB
	refresh   *service.RefreshService
	athleteID int64
}

func (a *appContext) Close() {
	a.db.Close()
}

// setup loads config, opens the store and wires the refresh service,
// running the OAuth flow if no credentials are stored yet.
func setup(ctx context.Context) (*appContext, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	app := &appContext{cfg: cfg, db: db}
	if err := app.connect(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

// loadConfig loads and validates the config file, creating an example
// and printing instructions when none exists yet.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating an example...")
		if err := config.CreateExample(); err != nil {
			return nil, fmt.Errorf("creating example config: %w", err)
		}
		printConfigHelp()
		return nil, errConfigIncomplete
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Config validation failed: %v\n\n", err)
		printConfigHelp()
		return nil, errConfigIncomplete
	}

	return cfg, nil
}

func printConfigHelp() {
	configDir, _ := config.GetConfigDir()
	fmt.Printf("\nEdit the config file at:\n  %s/config.json\n\n", configDir)
	fmt.Println("You need Strava API credentials.")
	fmt.Println("Get them from: https://www.strava.com/settings/api")
}

// connect builds the refresh service over stored credentials, running
// the OAuth flow first if none exist.
func (a *appContext) connect(ctx context.Context) error {
	storedAuth, err := a.db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		fmt.Println("No Strava account linked yet. Starting OAuth flow...")
		if err := a.reauthenticate(ctx); err != nil {
			return err
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking auth: %w", err)
	}

	a.buildServices(storedAuth)
	return nil
}

// reauthenticate runs the browser OAuth flow and rebuilds the services
// over the fresh tokens.
func (a *appContext) reauthenticate(ctx context.Context) error {
	result, err := auth.Authenticate(ctx, a.oauthConfig())
	if err != nil {
		return fmt.Errorf("authentication: %w", err)
	}

	storedAuth := &store.Auth{
		AthleteID:    result.AthleteID,
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
		ExpiresAt:    result.Token.Expiry,
	}
	if err := a.db.SaveAuth(storedAuth); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}

	fmt.Println()
	fmt.Printf("Connected as athlete %d.\n", result.AthleteID)

	a.buildServices(storedAuth)
	return nil
}

func (a *appContext) buildServices(storedAuth *store.Auth) {
	token := &oauth2.Token{
		AccessToken:  storedAuth.AccessToken,
		RefreshToken: storedAuth.RefreshToken,
		Expiry:       storedAuth.ExpiresAt,
	}

	tokenSource := auth.NewTokenSource(a.oauthConfig(), token, func(fresh *oauth2.Token) error {
		return a.db.UpdateTokens(fresh.AccessToken, fresh.RefreshToken, fresh.Expiry)
	})

	client := strava.NewClient(tokenSource)
	a.athleteID = storedAuth.AthleteID
	a.refresh = service.NewRefreshService(client, a.db, service.RefreshConfig{
		AthleteID:         storedAuth.AthleteID,
		Goal:              a.cfg.StreakGoal(),
		Milestones:        a.cfg.MilestoneTable(),
		InitialLoadMonths: a.cfg.Sync.InitialLoadMonths,
	})
}

func (a *appContext) oauthConfig() *oauth2.Config {
	return auth.NewConfig(auth.Credentials{
		ClientID:     a.cfg.Strava.ClientID,
		ClientSecret: a.cfg.Strava.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
	})
}
