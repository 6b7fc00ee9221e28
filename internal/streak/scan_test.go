package streak

import (
	"testing"
	"time"
)

func TestScan(t *testing.T) {
	goal := DefaultGoal()

	tests := []struct {
		name          string
		activities    []Activity
		ref           string
		length        int
		startDate     string
		lastConfirmed string
	}{
		{
			name: "three consecutive qualifying days",
			activities: []Activity{
				run(1, "2023-09-30", 3600, 10000),
				run(2, "2023-10-01", 1800, 5000),
				run(3, "2023-10-02", 3600, 10000),
			},
			ref:           "2023-10-02",
			length:        3,
			startDate:     "2023-09-30",
			lastConfirmed: "2023-10-02",
		},
		{
			name: "gap yields a single-day streak",
			activities: []Activity{
				run(1, "2023-09-30", 3600, 10000),
				run(2, "2023-10-02", 3600, 10000),
			},
			ref:           "2023-10-02",
			length:        1,
			startDate:     "2023-10-02",
			lastConfirmed: "2023-10-02",
		},
		{
			name: "in-progress today does not break the streak",
			activities: []Activity{
				run(1, "2023-09-30", 3600, 10000),
				run(2, "2023-10-01", 1800, 5000),
			},
			ref:           "2023-10-02",
			length:        2,
			startDate:     "2023-09-30",
			lastConfirmed: "2023-10-01",
		},
		{
			name: "no qualifying day at all",
			activities: []Activity{
				run(1, "2023-09-30", 1500, 4000), // 25 min goal not met
			},
			ref:    "2023-10-02",
			length: 0,
		},
		{
			name:       "no activities",
			activities: nil,
			ref:        "2023-10-02",
			length:     0,
		},
		{
			name: "isolated day surrounded by gaps",
			activities: []Activity{
				run(1, "2023-09-25", 3600, 10000),
				run(2, "2023-09-28", 3600, 10000),
			},
			ref:           "2023-09-28",
			length:        1,
			startDate:     "2023-09-28",
			lastConfirmed: "2023-09-28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(tt.activities, mustDate(tt.ref), goal)
			if res.Length != tt.length {
				t.Errorf("Length = %d, want %d", res.Length, tt.length)
			}
			if tt.length == 0 {
				if !res.StartDate.IsZero() || !res.LastConfirmed.IsZero() {
					t.Errorf("zero streak should have zero dates, got %+v", res)
				}
				return
			}
			if res.StartDate != mustDate(tt.startDate) {
				t.Errorf("StartDate = %s, want %s", res.StartDate, tt.startDate)
			}
			if res.LastConfirmed != mustDate(tt.lastConfirmed) {
				t.Errorf("LastConfirmed = %s, want %s", res.LastConfirmed, tt.lastConfirmed)
			}
		})
	}
}

// The streak length must not depend on the wall-clock instant used for
// "now", only on its local calendar date. User in Calgary, server in
// Washington, and a UTC instant must all agree.
func TestScanTimezoneInvariance(t *testing.T) {
	goal := DefaultGoal()
	activities := []Activity{
		run(1, "2023-09-30", 3600, 10000),
		run(2, "2023-10-01", 1800, 5000),
		run(3, "2023-10-02", 3600, 10000),
	}

	calgary := time.FixedZone("UTC-6", -6*3600)
	washington := time.FixedZone("UTC-4", -4*3600)

	refs := []time.Time{
		time.Date(2023, 10, 2, 23, 0, 0, 0, calgary),   // local date 2023-10-02
		time.Date(2023, 10, 3, 1, 0, 0, 0, washington), // local date 2023-10-03
		time.Date(2023, 10, 3, 5, 0, 0, 0, time.UTC),   // local date 2023-10-03
	}

	for _, ref := range refs {
		res := Scan(activities, DateOf(ref), goal)
		if res.Length != 3 {
			t.Errorf("Scan at %v: Length = %d, want 3", ref, res.Length)
		}
		if res.StartDate != mustDate("2023-09-30") {
			t.Errorf("Scan at %v: StartDate = %s, want 2023-09-30", ref, res.StartDate)
		}
		if res.LastConfirmed != mustDate("2023-10-02") {
			t.Errorf("Scan at %v: LastConfirmed = %s, want 2023-10-02", ref, res.LastConfirmed)
		}
	}
}

func TestLongest(t *testing.T) {
	goal := DefaultGoal()

	tests := []struct {
		name       string
		activities []Activity
		length     int
		start      string
	}{
		{
			name: "finds a past streak longer than the current one",
			activities: []Activity{
				run(1, "2023-09-10", 3600, 10000),
				run(2, "2023-09-11", 3600, 10000),
				run(3, "2023-09-12", 3600, 10000),
				run(4, "2023-10-02", 3600, 10000),
			},
			length: 3,
			start:  "2023-09-10",
		},
		{
			name: "single day history",
			activities: []Activity{
				run(1, "2023-10-02", 3600, 10000),
			},
			length: 1,
			start:  "2023-10-02",
		},
		{
			name:       "no activities",
			activities: nil,
			length:     0,
		},
		{
			name: "non-qualifying days are not counted",
			activities: []Activity{
				run(1, "2023-09-10", 3600, 10000),
				run(2, "2023-09-11", 600, 1000), // gap in the middle
				run(3, "2023-09-12", 3600, 10000),
			},
			length: 1,
			start:  "2023-09-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			length, start := Longest(tt.activities, goal)
			if length != tt.length {
				t.Errorf("length = %d, want %d", length, tt.length)
			}
			if tt.length == 0 {
				if !start.IsZero() {
					t.Errorf("start = %s, want zero", start)
				}
				return
			}
			if start != mustDate(tt.start) {
				t.Errorf("start = %s, want %s", start, tt.start)
			}
		})
	}
}
