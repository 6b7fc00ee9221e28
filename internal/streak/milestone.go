package streak

import (
	"math"
	"sort"
)

// Milestone sizes scale the celebration.
const (
	SizeMinor = "minor"
	SizeMajor = "major"
)

// Milestone maps a streak length to a celebratory message.
type Milestone struct {
	Days int
	Text string
	Size string
}

// MilestoneTable is an ordered (ascending by Days) set of milestones.
type MilestoneTable []Milestone

// NoMilestone is returned by DaysToNext when no larger milestone exists.
const NoMilestone = math.MaxInt

// DefaultMilestones returns the built-in milestone table.
func DefaultMilestones() MilestoneTable {
	return MilestoneTable{
		{Days: 3, Text: "Three days in a row!", Size: SizeMinor},
		{Days: 7, Text: "A full week of running!", Size: SizeMinor},
		{Days: 14, Text: "Two weeks strong!", Size: SizeMinor},
		{Days: 30, Text: "A whole month. Unstoppable!", Size: SizeMajor},
		{Days: 50, Text: "Fifty days!", Size: SizeMinor},
		{Days: 100, Text: "One hundred days!", Size: SizeMajor},
		{Days: 365, Text: "A full year of running, every day!", Size: SizeMajor},
	}
}

// Sort orders the table ascending by Days, as DaysToNext requires.
func (t MilestoneTable) Sort() {
	sort.Slice(t, func(i, j int) bool { return t[i].Days < t[j].Days })
}

// DaysToNext returns how many days remain until the next milestone: 0 when
// current sits exactly on a milestone, NoMilestone when none is larger.
func (t MilestoneTable) DaysToNext(current int) int {
	for _, m := range t {
		if m.Days >= current {
			return m.Days - current
		}
	}
	return NoMilestone
}

// At returns the milestone for an exact streak length.
func (t MilestoneTable) At(days int) (Milestone, bool) {
	for _, m := range t {
		if m.Days == days {
			return m, true
		}
	}
	return Milestone{}, false
}

// IsMilestoneMoment reports whether today is the one day a milestone
// notification should fire: either the streak reached a milestone and was
// confirmed today, or the next milestone is exactly one day away, today is
// not yet completed, and the streak was last confirmed before today (so
// running today would newly unlock it). The asymmetry keeps the "about to
// unlock" nudge from repeating on later days.
func IsMilestoneMoment(daysToNext int, todayCompleted bool, lastConfirmed, today Date) bool {
	if daysToNext == 0 && todayCompleted && lastConfirmed == today {
		return true
	}
	return daysToNext == 1 && !todayCompleted && lastConfirmed.Before(today)
}
