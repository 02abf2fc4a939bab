package core

import (
	"testing"
	"time"
)

func TestWeekOfMonth(t *testing.T) {
	cases := []struct {
		date time.Time
		week int
	}{
		// October 2025 starts on a Wednesday (firstWeekday=3):
		// the 1st is ceil((1+3-1)/7) = 1.
		{time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC), 1}, // Saturday
		// The -1 in the formula puts a Sunday at the tail of the
		// previous week, not the head of the next one.
		{time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC), 2}, // Monday
		{time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), 5},
		// August 2025 starts on a Friday (firstWeekday=5).
		{time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), 5},
	}
	for _, tc := range cases {
		if got := WeekOfMonth(tc.date); got != tc.week {
			t.Fatalf("%v: got week %d, want %d", tc.date.Format("2006-01-02"), got, tc.week)
		}
	}
}

// June 2025 starts on a Sunday: the formula places the 1st in week 0 and the
// 2nd in week 1. This quirk is load-bearing for stored history, so it is
// pinned here rather than fixed.
func TestWeekOfMonthSundayStart(t *testing.T) {
	if got := WeekOfMonth(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Fatalf("June 1 2025: got week %d, want 0", got)
	}
	if got := WeekOfMonth(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)); got != 1 {
		t.Fatalf("June 2 2025: got week %d, want 1", got)
	}
	if got := WeekOfMonth(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)); got != 1 {
		t.Fatalf("June 8 2025: got week %d, want 1", got)
	}
}

func TestWeekBounds(t *testing.T) {
	// August 2025, firstWeekday=5 (Friday).
	// Week 2 runs Sunday the 3rd through Saturday the 9th.
	start, end := WeekBounds(2, time.August, 2025)
	if start.Day() != 3 || start.Month() != time.August {
		t.Fatalf("week 2 start: got %v", start)
	}
	if end.Day() != 9 || end.Month() != time.August {
		t.Fatalf("week 2 end: got %v", end)
	}

	// October 2025 week 5 is a trailing partial week: Sunday the 26th
	// through Friday the 31st, with the end clamped to month end.
	start, end = WeekBounds(5, time.October, 2025)
	if start.Day() != 26 || start.Month() != time.October {
		t.Fatalf("week 5 start: got %v", start)
	}
	if end.Day() != 31 || end.Month() != time.October {
		t.Fatalf("week 5 end should clamp to month end, got %v", end)
	}
}

// The computed start of week 1 is not clamped to the 1st: for a month that
// starts mid-week it normalizes into the previous month. Pinned deliberately.
func TestWeekBoundsWeekOneRollsBack(t *testing.T) {
	start, end := WeekBounds(1, time.August, 2025)
	if start.Month() != time.July || start.Day() != 27 {
		t.Fatalf("week 1 start should roll back to July 27, got %v", start)
	}
	if end.Month() != time.August || end.Day() != 2 {
		t.Fatalf("week 1 end: got %v", end)
	}
}
