package streak

// WindowDays is the number of days in the recent-days window.
const WindowDays = 7

// DayEntry is a DayStatus positioned inside the recent-days window.
type DayEntry struct {
	DayStatus
	Index   int    // 0 = today, WindowDays-1 = oldest
	Weekday string // e.g. "Monday"
}

// BuildWindow evaluates the WindowDays days ending at today. The window is
// newest-first: index 0 is always today and index WindowDays-1 the oldest
// day. Callers that need chronological order iterate it in reverse.
func BuildWindow(activities []Activity, today Date, goal Goal) []DayEntry {
	window := make([]DayEntry, WindowDays)
	for i := 0; i < WindowDays; i++ {
		day := today.AddDays(-i)
		window[i] = DayEntry{
			DayStatus: EvaluateDay(activities, day, goal),
			Index:     i,
			Weekday:   day.Weekday().String(),
		}
	}
	return window
}
