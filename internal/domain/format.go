package domain

import "fmt"

// UnavailableText is displayed for legs whose duration could not be resolved.
const UnavailableText = "unavailable"

// FormatDuration renders a travel duration for display.
// Under an hour the minutes are rounded up; from one hour on, hours and the
// remaining whole minutes are shown, omitting the minutes when zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 3600 {
		minutes := (seconds + 59) / 60
		if minutes < 60 {
			return fmt.Sprintf("%d min", minutes)
		}
		return "1 hour"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	unit := "hours"
	if hours == 1 {
		unit = "hour"
	}
	if minutes == 0 {
		return fmt.Sprintf("%d %s", hours, unit)
	}
	return fmt.Sprintf("%d %s %d min", hours, unit, minutes)
}
