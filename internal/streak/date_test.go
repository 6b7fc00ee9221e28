package streak

import (
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	calgary := time.FixedZone("UTC-6", -6*3600)
	washington := time.FixedZone("UTC-4", -4*3600)

	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{
			name:     "morning UTC",
			instant:  time.Date(2023, 10, 1, 10, 0, 0, 0, time.UTC),
			expected: "2023-10-01",
		},
		{
			name:     "late evening keeps local date",
			instant:  time.Date(2023, 10, 2, 23, 0, 0, 0, calgary),
			expected: "2023-10-02",
		},
		{
			name:     "same instant in a later zone is the next day",
			instant:  time.Date(2023, 10, 3, 1, 0, 0, 0, washington),
			expected: "2023-10-03",
		},
		{
			name:     "midnight boundary",
			instant:  time.Date(2023, 10, 3, 0, 0, 0, 0, time.UTC),
			expected: "2023-10-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateOf(tt.instant).String(); got != tt.expected {
				t.Errorf("DateOf(%v) = %s, want %s", tt.instant, got, tt.expected)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-10-01")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if d.String() != "2023-10-01" {
		t.Errorf("round trip = %s, want 2023-10-01", d)
	}

	if _, err := ParseDate("10/01/2023"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestDateAddDays(t *testing.T) {
	tests := []struct {
		start    string
		days     int
		expected string
	}{
		{"2023-10-01", 1, "2023-10-02"},
		{"2023-10-01", -1, "2023-09-30"},
		{"2023-12-31", 1, "2024-01-01"},
		{"2024-03-01", -1, "2024-02-29"}, // leap year
		{"2023-10-01", 0, "2023-10-01"},
		{"2023-10-01", 7, "2023-10-08"},
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.start)
		if err != nil {
			t.Fatal(err)
		}
		if got := d.AddDays(tt.days).String(); got != tt.expected {
			t.Errorf("%s.AddDays(%d) = %s, want %s", tt.start, tt.days, got, tt.expected)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a, _ := ParseDate("2023-09-30")
	b, _ := ParseDate("2023-10-01")

	if !a.Before(b) {
		t.Error("2023-09-30 should be before 2023-10-01")
	}
	if !b.After(a) {
		t.Error("2023-10-01 should be after 2023-09-30")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date is neither before nor after itself")
	}

	var zero Date
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if a.IsZero() {
		t.Error("real date should not report IsZero")
	}
	if !zero.Before(a) {
		t.Error("zero date should sort before any real date")
	}
}

func TestDateWeekday(t *testing.T) {
	d, _ := ParseDate("2023-10-02")
	if d.Weekday() != time.Monday {
		t.Errorf("2023-10-02 weekday = %v, want Monday", d.Weekday())
	}
}
