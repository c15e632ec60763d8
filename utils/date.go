package utils

import "time"

// DefaultTimezone is the zone the backend's members and admins work in.
const DefaultTimezone = "Asia/Dhaka"

func FromUTCToTimezone(utcTime time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return utcTime
	}
	return utcTime.In(loc)
}

// FormatLocal renders t in DefaultTimezone. A nil time renders as "-".
func FormatLocal(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return FromUTCToTimezone(t.UTC(), DefaultTimezone).Format("02 Jan 2006 15:04")
}
