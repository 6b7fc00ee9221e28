package streak

import "time"

// StreakData is the full result handed to callers: the updated state, the
// recent-days window and today's totals. It is the only contract any
// presentation layer consumes.
type StreakData struct {
	State          State
	Window         []DayEntry // newest-first, index 0 = today
	TodayMinutes   int
	TodayCompleted bool
}

// Compute is the single entry point for both computation strategies. With
// no prior state it runs the cold-start scan over the whole activity list;
// with prior state it applies the incremental update. The two paths share
// EvaluateDay and Stats.Accumulate, so they agree exactly on overlapping
// days. In both cases the longest streak is promoted before returning.
func Compute(activities []Activity, now time.Time, prior *State, goal Goal) StreakData {
	today := DateOf(now)
	window := BuildWindow(activities, today, goal)

	var st State
	if prior == nil {
		st = initState(activities, today, goal)
	} else {
		st = Update(window, today, *prior)
	}

	if st.Current > st.Longest {
		st.Longest = st.Current
		st.LongestStart = st.CurrentStart
	}

	return StreakData{
		State:          st,
		Window:         window,
		TodayMinutes:   window[0].Duration,
		TodayCompleted: window[0].Completed,
	}
}

// initState builds streak state from scratch: current streak by backward
// scan from today, longest streak over the full history, stats over the
// current streak's span.
func initState(activities []Activity, today Date, goal Goal) State {
	scan := Scan(activities, today, goal)
	longest, longestStart := Longest(activities, goal)

	return State{
		Current:       scan.Length,
		CurrentStart:  scan.StartDate,
		LastConfirmed: scan.LastConfirmed,
		Longest:       longest,
		LongestStart:  longestStart,
		Stats:         StatsFromScratch(activities, scan.StartDate, scan.LastConfirmed, goal),
	}
}
