package streak

// State is the persisted streak record. LastConfirmed anchors incremental
// updates: it is the most recent calendar day already folded into Current,
// and it never moves backward.
//
// Invariants after any update: Current == 0 implies CurrentStart is the
// zero date, and Longest >= Current once the caller has promoted.
type State struct {
	Current       int
	CurrentStart  Date
	LastConfirmed Date
	Longest       int
	LongestStart  Date
	Stats         Stats
}

// Update advances prior by folding the window in chronological order
// (the window is stored newest-first, so it is walked in reverse).
//
// For each day:
//   - completed and after LastConfirmed: extend the streak and fold the
//     day's totals into the stats;
//   - incomplete but today: skipped, the day may still be in progress;
//   - incomplete, in the past and after LastConfirmed: the streak is broken.
//     Length and stats reset, LastConfirmed advances to the missed day.
//
// Replaying a window that is already fully folded (every date at or before
// LastConfirmed) is a no-op. Sequential application is the caller's job;
// two concurrent updates against the same prior would double-count.
func Update(window []DayEntry, today Date, prior State) State {
	st := prior
	for i := len(window) - 1; i >= 0; i-- {
		e := window[i]
		switch {
		case e.Completed && e.Date.After(st.LastConfirmed):
			st.Current++
			if st.Current == 1 {
				st.CurrentStart = e.Date
			}
			st.LastConfirmed = e.Date
			st.Stats.Accumulate(e)

		case !e.Completed && e.Date == today:
			// still in progress

		case !e.Completed && e.Date.After(st.LastConfirmed):
			st.Current = 0
			st.CurrentStart = Date{}
			st.LastConfirmed = e.Date
			st.Stats.Reset()
		}
	}
	return st
}
