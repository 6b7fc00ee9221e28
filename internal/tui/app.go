package tui

import (
	"context"
	"errors"

	"runstreak/internal/service"
	"runstreak/internal/strava"
	"runstreak/internal/streak"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenHelp
)

// ErrReauthNeeded is returned from Run when Strava rejected our tokens
// and the user must go through the OAuth flow again.
var ErrReauthNeeded = errors.New("reauthentication needed")

// App is the root Bubble Tea model
type App struct {
	screen Screen

	dashboard DashboardModel
	help      HelpModel

	refresh *service.RefreshService

	spin       spinner.Model
	refreshing bool
	err        error

	width  int
	height int

	// set when the API rejected our credentials and the program should
	// exit into the OAuth flow
	reauth bool
}

// NewApp creates the root model
func NewApp(refresh *service.RefreshService, goal streak.Goal) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return &App{
		screen:    ScreenDashboard,
		refresh:   refresh,
		dashboard: NewDashboardModel(goal),
		help:      NewHelpModel(),
		spin:      sp,
	}
}

// Run starts the TUI and blocks until exit. ErrReauthNeeded means the
// caller should run the OAuth flow and start over.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	model, err := p.Run()
	if err != nil {
		return err
	}
	if final, ok := model.(*App); ok && final.reauth {
		return ErrReauthNeeded
	}
	return nil
}

// refreshDoneMsg is sent when a refresh finishes
type refreshDoneMsg struct {
	result *service.RefreshResult
	err    error
}

func (a *App) startRefresh() tea.Msg {
	result, err := a.refresh.Refresh(context.Background(), nil)
	return refreshDoneMsg{result: result, err: err}
}

// Init kicks off the first refresh
func (a *App) Init() tea.Cmd {
	a.refreshing = true
	return tea.Batch(a.spin.Tick, a.startRefresh)
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "r":
			if !a.refreshing {
				a.refreshing = true
				a.err = nil
				return a, tea.Batch(a.spin.Tick, a.startRefresh)
			}
		case "?":
			a.screen = ScreenHelp
			return a, nil
		case "esc":
			a.screen = ScreenDashboard
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case refreshDoneMsg:
		a.refreshing = false
		if errors.Is(msg.err, strava.ErrUnauthorized) {
			a.reauth = true
			return a, tea.Quit
		}
		a.err = msg.err
		if msg.err == nil {
			a.dashboard.SetResult(msg.result)
		}
		return a, nil

	case spinner.TickMsg:
		if a.refreshing {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
	}

	return a, nil
}

// View renders the app
func (a *App) View() string {
	header := headerStyle.Render("runstreak")

	var content string
	switch a.screen {
	case ScreenHelp:
		content = a.help.View()
	default:
		content = a.dashboard.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a *App) renderFooter() string {
	if a.err != nil {
		return errorStyle.Render("Error: " + a.err.Error())
	}
	if a.refreshing {
		return statusStyle.Render(a.spin.View() + " Syncing with Strava...")
	}
	return statusStyle.Render("[r] refresh  [?] help  [q] quit")
}
