package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	sections = append(sections, m.renderSection("Dashboard", []keyHelp{
		{"r", "Sync with Strava and recompute the streak"},
		{"?", "Help (this screen)"},
		{"esc", "Back to the dashboard"},
		{"q", "Quit"},
	}))

	sections = append(sections, m.renderSection("Day Marks", []keyHelp{
		{"✓", "Goal met"},
		{"~", "Goal met, barely (minimum day)"},
		{"·", "Today, still open"},
		{"✗", "Missed"},
	}))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, items []keyHelp) string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, metricValueStyle.Render(title))
	for _, item := range items {
		lines = append(lines, "  "+RenderKeyHelp(padKey(item.key), item.desc))
	}
	return strings.Join(lines, "\n")
}

func padKey(key string) string {
	for len(key) < 5 {
		key += " "
	}
	return key
}
