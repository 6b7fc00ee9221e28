package streak

// Stats holds cumulative counters scoped to the lifetime of the current
// streak. They are zeroed whenever the streak resets.
type Stats struct {
	Runs          int
	MinimumDays   int // completed days that barely cleared the goal
	OutdoorRuns   int
	TotalDuration int     // minutes
	TotalDistance float64 // km
}

// Accumulate folds one completed day's totals into the running counters.
func (s *Stats) Accumulate(e DayEntry) {
	s.Runs += e.Runs
	s.OutdoorRuns += e.OutdoorRuns
	s.TotalDuration += e.Duration
	s.TotalDistance += e.DistanceKm
	if e.MinimumDay {
		s.MinimumDays++
	}
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	*s = Stats{}
}

// StatsFromScratch recomputes the counters over [since, until] by folding
// each completed day through the same evaluation and accumulation used by
// the incremental path, so a cold start and a replayed warm update agree
// exactly. A zero since date yields zero stats.
func StatsFromScratch(activities []Activity, since, until Date, goal Goal) Stats {
	var stats Stats
	if since.IsZero() || until.Before(since) {
		return stats
	}
	for day := since; !day.After(until); day = day.AddDays(1) {
		status := EvaluateDay(activities, day, goal)
		if !status.Completed {
			continue
		}
		stats.Accumulate(DayEntry{DayStatus: status})
	}
	return stats
}

// AvgDuration returns the average minutes per run, or 0 with no runs.
func (s Stats) AvgDuration() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.TotalDuration) / float64(s.Runs)
}

// AvgDistance returns the average km per run, or 0 with no runs.
func (s Stats) AvgDistance() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.TotalDistance / float64(s.Runs)
}
