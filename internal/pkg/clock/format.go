package clock

import (
	"fmt"
	"math"
)

// DefaultHoursPerDay is the working-day length used when splitting hour
// totals into days for display.
const DefaultHoursPerDay = 8.0

// FormatHHMMSS renders signed decimal hours as HH:MM:SS. Seconds are
// truncated, not rounded, and the hour field grows without wrapping at 24.
func FormatHHMMSS(hours float64) string {
	if hours == 0 || math.IsNaN(hours) {
		return "00:00:00"
	}

	negative := hours < 0
	totalSeconds := wholeSeconds(math.Abs(hours))
	result := fmt.Sprintf("%02d:%02d:%02d",
		totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
	if negative {
		return "-" + result
	}
	return result
}

// FormatDDHHMMSS renders signed decimal hours as DD:HH:MM:SS, splitting the
// magnitude into hoursPerDay-sized days plus a remainder. The day field is
// unbounded.
func FormatDDHHMMSS(hours, hoursPerDay float64) string {
	if hours == 0 || math.IsNaN(hours) {
		return "00:00:00:00"
	}

	negative := hours < 0
	magnitude := math.Abs(hours)
	days := int(magnitude / hoursPerDay)
	remainder := math.Mod(magnitude, hoursPerDay)

	totalSeconds := wholeSeconds(remainder)
	result := fmt.Sprintf("%02d:%02d:%02d:%02d",
		days, totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
	if negative {
		return "-" + result
	}
	return result
}

// wholeSeconds truncates decimal hours to whole seconds. The small slack
// keeps exact second counts from dropping by one through float error.
func wholeSeconds(hours float64) int {
	return int(hours*3600 + 1e-6)
}
