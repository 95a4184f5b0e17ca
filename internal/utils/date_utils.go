package utils

import "time"

// SameUTCDay reports whether a and b fall on the same UTC calendar day.
// Stats must not shift with the server's local timezone, so every date
// comparison in the project goes through UTC.
func SameUTCDay(a, b time.Time) bool {
	return a.UTC().Format("2006-01-02") == b.UTC().Format("2006-01-02")
}

// WeekAgo returns the continuous-time cutoff for "this week": exactly
// seven days before now, not a calendar-week boundary.
func WeekAgo(now time.Time) time.Time {
	return now.AddDate(0, 0, -7)
}
