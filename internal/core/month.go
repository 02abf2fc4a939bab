package core

import "time"

// MonthNames lists the canonical full English month names in calendar order.
// These are the only month values accepted anywhere in the system.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex resolves a canonical month name to its time.Month. The second
// return is false for anything that is not an exact full English name.
func MonthIndex(name string) (time.Month, bool) {
	for i, n := range MonthNames {
		if n == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// LastDayOfMonth returns the final calendar day of the given month at UTC
// midnight. time.Date normalizes day 0 of the next month backwards.
func LastDayOfMonth(month time.Month, year int) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// CurrentAnchor returns the month name and year of the given instant,
// used to seed BudgetData when none is stored yet.
func CurrentAnchor(now time.Time) (string, int) {
	return now.Month().String(), now.Year()
}
