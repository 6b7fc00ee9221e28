package tui

import (
	"fmt"
	"strings"

	"runstreak/internal/service"
	"runstreak/internal/streak"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel renders the streak dashboard. It is a pure view over
// the last refresh result; all state transitions happen in App.
type DashboardModel struct {
	goal   streak.Goal
	result *service.RefreshResult
}

// NewDashboardModel creates a dashboard for the given goal
func NewDashboardModel(goal streak.Goal) DashboardModel {
	return DashboardModel{goal: goal}
}

// SetResult installs the latest refresh result
func (m *DashboardModel) SetResult(r *service.RefreshResult) {
	m.result = r
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.result == nil {
		return statusStyle.Render("  Loading your streak...")
	}

	var sections []string

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderStreakCard(), "  ", m.renderTodayCard())
	sections = append(sections, topRow)

	if milestone := m.renderMilestone(); milestone != "" {
		sections = append(sections, milestone)
	}

	sections = append(sections, m.renderWeekCard())
	sections = append(sections, m.renderStatsCard())

	if m.result.Stale {
		sections = append(sections,
			warningStyle.Render("  Strava unreachable - showing cached data"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderStreakCard() string {
	st := m.result.Data.State
	title := cardTitleStyle.Render("Current Streak")

	count := streakCountStyle.Render(fmt.Sprintf("%d %s", st.Current, pluralDays(st.Current)))

	lines := []string{count}
	if st.Current > 0 {
		lines = append(lines, dayLabelStyle.Render("since "+formatDate(st.CurrentStart)))
	} else {
		lines = append(lines, dayLabelStyle.Render("run today to start a new one"))
	}
	lines = append(lines, "")

	longest := fmt.Sprintf("%d %s", st.Longest, pluralDays(st.Longest))
	if !st.LongestStart.IsZero() {
		longest += dayLabelStyle.Render("  from " + formatDate(st.LongestStart))
	}
	lines = append(lines, RenderMetric("Longest", longest))

	if next := m.result.DaysToNext; next != streak.NoMilestone && next > 0 {
		lines = append(lines, RenderMetric("Next milestone", fmt.Sprintf("in %d %s", next, pluralDays(next))))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderTodayCard() string {
	title := cardTitleStyle.Render("Today")

	minutes := m.result.Data.TodayMinutes
	goalMinutes := m.goal.MinimumDuration

	var lines []string
	lines = append(lines, fmt.Sprintf("%s / %d min  %s",
		metricValueStyle.Render(fmt.Sprintf("%d", minutes)),
		goalMinutes,
		RenderProgressBar(float64(minutes)/float64(goalMinutes), 14)))

	switch {
	case m.result.Data.TodayCompleted:
		lines = append(lines, successStyle.Render("Done! The streak lives another day."))
	case minutes > 0:
		remaining := goalMinutes - minutes
		lines = append(lines, warningStyle.Render(fmt.Sprintf("%d more %s to keep it alive", remaining, pluralMinutes(remaining))))
	default:
		lines = append(lines, dayLabelStyle.Render("No run yet today"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderMilestone() string {
	if !m.result.MilestoneMoment {
		return ""
	}

	ms := m.result.Milestone
	style := milestoneMinorStyle
	if ms.Size == streak.SizeMajor {
		style = milestoneMajorStyle
	}

	text := ms.Text
	if m.result.DaysToNext == 1 {
		text = fmt.Sprintf("Run today to hit %d days!", ms.Days)
	}
	return cardStyle.BorderForeground(streakColor).Render(style.Render("★ " + text))
}

// renderWeekCard draws the last seven days oldest-first, with today at
// the right edge.
func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("Last 7 Days")

	window := m.result.Data.Window

	var labels, marks, minutes []string
	for i := len(window) - 1; i >= 0; i-- {
		e := window[i]
		labels = append(labels, dayLabelStyle.Render(fmt.Sprintf("%3s", e.Weekday[:2])))

		switch {
		case e.Completed && e.MinimumDay:
			marks = append(marks, dayDoneStyle.Render("  ~"))
		case e.Completed:
			marks = append(marks, dayDoneStyle.Render("  ✓"))
		case e.Index == 0:
			marks = append(marks, dayOpenStyle.Render("  ·"))
		default:
			marks = append(marks, dayMissedStyle.Render("  ✗"))
		}

		if e.Duration > 0 {
			minutes = append(minutes, fmt.Sprintf("%3d", e.Duration))
		} else {
			minutes = append(minutes, dayLabelStyle.Render("  -"))
		}
	}

	rows := []string{
		strings.Join(labels, " "),
		strings.Join(marks, " "),
		dayLabelStyle.Render(strings.Join(minutes, " ") + "  min"),
	}

	if chart := m.renderSparkline(); chart != "" {
		rows = append(rows, "", chart)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

// renderSparkline plots the window's daily minutes when there is
// anything to see.
func (m DashboardModel) renderSparkline() string {
	window := m.result.Data.Window

	data := make([]float64, 0, len(window))
	any := false
	for i := len(window) - 1; i >= 0; i-- {
		d := float64(window[i].Duration)
		if d > 0 {
			any = true
		}
		data = append(data, d)
	}
	if !any {
		return ""
	}

	return asciigraph.Plot(data,
		asciigraph.Height(5),
		asciigraph.Width(36),
		asciigraph.Precision(0),
	)
}

func (m DashboardModel) renderStatsCard() string {
	st := m.result.Data.State.Stats
	title := cardTitleStyle.Render("Streak Stats")

	if st.Runs == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			title, dayLabelStyle.Render("Nothing yet - stats follow the streak")))
	}

	lines := []string{
		RenderMetric("Runs", fmt.Sprintf("%d (%d outdoor)", st.Runs, st.OutdoorRuns)),
		RenderMetric("Minimum days", fmt.Sprintf("%d", st.MinimumDays)),
		RenderMetric("Total time", formatMinutes(st.TotalDuration)),
		RenderMetric("Total distance", fmt.Sprintf("%.1f km", st.TotalDistance)),
		RenderMetric("Avg run", fmt.Sprintf("%.0f min / %.1f km", st.AvgDuration(), st.AvgDistance())),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(46).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func formatDate(d streak.Date) string {
	return d.Time().Format("Jan 2, 2006")
}

func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func pluralMinutes(n int) string {
	if n == 1 {
		return "minute"
	}
	return "minutes"
}
