package streak

// Activity is the slice of an activity record the streak computation needs.
// The list handed to this package carries no dedup or ordering guarantees,
// so days are always selected by local calendar date, never by position.
type Activity struct {
	ID             int64
	Name           string
	Type           string
	StartDateLocal Date    // local calendar date the activity started on
	MovingTime     int     // seconds
	Distance       float64 // meters
	Outdoor        bool
}

// Minutes returns the activity's moving time in whole minutes, floored.
func (a Activity) Minutes() int {
	return a.MovingTime / 60
}

// Goal holds the injectable completion thresholds.
type Goal struct {
	MinimumDuration int     // minutes required for a day to count
	GraceDuration   int     // minutes of slack when the grace distance is met
	GraceDistanceKm float64 // distance that activates the grace rule
	MinimumDayBand  int     // minutes above the goal still counted as a "minimum day"
}

// DefaultGoal returns the standard completion rule: 25 minutes, or at least
// 20 minutes when the day covers 5 km (a short race still counts).
func DefaultGoal() Goal {
	return Goal{
		MinimumDuration: 25,
		GraceDuration:   5,
		GraceDistanceKm: 5,
		MinimumDayBand:  5,
	}
}

// DayStatus is the evaluated result for one calendar day. It is derived on
// every evaluation and never persisted; Completed depends only on the day's
// totals and the goal, never on streak state.
type DayStatus struct {
	Date        Date
	Completed   bool
	Duration    int     // minutes, per-activity floored before summing
	DistanceKm  float64
	Runs        int
	OutdoorRuns int
	MinimumDay  bool
	Activities  []Activity
}

// EvaluateDay aggregates the activities that started on day and applies the
// completion rule. A day is completed when its total duration meets the
// minimum, or when it is within the grace window and covers the grace
// distance.
func EvaluateDay(activities []Activity, day Date, goal Goal) DayStatus {
	status := DayStatus{Date: day}

	for _, a := range activities {
		if a.StartDateLocal != day {
			continue
		}
		status.Activities = append(status.Activities, a)
		status.Duration += a.Minutes()
		status.DistanceKm += a.Distance / 1000
		status.Runs++
		if a.Outdoor {
			status.OutdoorRuns++
		}
	}

	switch {
	case status.Duration >= goal.MinimumDuration:
		status.Completed = true
	case status.Duration >= goal.MinimumDuration-goal.GraceDuration &&
		status.DistanceKm >= goal.GraceDistanceKm:
		status.Completed = true
	}

	// A completed day that barely cleared the bar. Uses the raw minimum, so
	// grace-qualified days are always minimum days.
	status.MinimumDay = status.Completed &&
		status.Duration < goal.MinimumDuration+goal.MinimumDayBand

	return status
}
