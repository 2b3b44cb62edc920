package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DayKey renders a calendar day as YYYY-MM-DD, the format shared by the
// calendar provider keys and the forecast API.
func DayKey(day time.Time) string {
	return day.Format("2006-01-02")
}
