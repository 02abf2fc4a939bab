package core

import "time"

// WeekOfMonth returns the Sunday-aligned week index (normally 1-based) of a
// date within its calendar month: with firstWeekday the weekday of the 1st
// (0=Sunday) the index is ceil((day + firstWeekday - 1) / 7).
//
// The formula is preserved exactly for compatibility with stored history,
// including its quirk: in a month that starts on a Sunday, the 1st lands in
// week 0.
func WeekOfMonth(date time.Time) int {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	firstWeekday := int(first.Weekday())
	adjusted := date.Day() + firstWeekday - 1
	return (adjusted + 6) / 7
}

// WeekBounds returns the start and end dates of the given week index inside
// a month. The start day may compute to zero or negative for week 1; it is
// deliberately not clamped and normalizes into the previous month, matching
// the historic behavior. The end is clamped to the last day of the month.
func WeekBounds(weekNumber int, month time.Month, year int) (start, end time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstWeekday := int(first.Weekday())

	startDay := (weekNumber-1)*7 - firstWeekday + 1
	start = time.Date(year, month, startDay, 0, 0, 0, 0, time.UTC)

	end = start.AddDate(0, 0, 6)
	if last := LastDayOfMonth(month, year); end.After(last) {
		end = last
	}
	return start, end
}
