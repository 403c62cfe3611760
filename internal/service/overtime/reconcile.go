package overtime

import (
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/clock"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/spreadsheet"
)

// A real single-day overtime never exceeds this. Apparent durations above it
// are wrapped negatives: the authoring tool cannot store a negative
// time-of-day and writes 24:00:00 minus the magnitude instead.
const maxDailyOvertimeHours = 12.0

// reconcileOvertime decodes a raw OVERTIME HOURS cell into signed decimal
// hours, recovering values the authoring tool wrapped through its epoch.
// calculated is the row's worked-minus-target figure, used whenever the cell
// itself yields nothing trustworthy.
func reconcileOvertime(cell spreadsheet.Cell, calculated float64) float64 {
	if cell.IsAbsent() {
		return calculated
	}

	// A sentinel-year timestamp is a negative duration in disguise: its
	// time-of-day component equals 24:00:00 minus the magnitude. Midnight
	// carries no time component worth recovering.
	if cell.Kind == spreadsheet.CellTimestamp && cell.Time.Year() < clock.MinYear {
		wrapped := cell.Time.Format("15:04:05")
		if wrapped == "00:00:00" {
			return calculated
		}
		return clock.TimeToHours(wrapped) - 24.0
	}

	parsed, ok := clock.ParseTimeOfDay(cell)
	if !ok {
		return calculated
	}
	hours := clock.TimeToHours(parsed)
	if hours > maxDailyOvertimeHours {
		return hours - 24.0
	}
	return hours
}
