// Package clock normalizes the time and date encodings found in attendance
// exports: time-of-day stored as dates, free-text date strings, and the
// "no value" placeholder tokens the upstream tool writes.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/spreadsheet"
)

// Calendar years outside this range never occur in real attendance data.
// Earlier years are sentinel artifacts of the authoring tool.
const (
	MinYear = 2000
	MaxYear = 2100
)

// Sentinel years the authoring tool is known to emit when a time-of-day
// underflows into a date.
const (
	sentinelYear1900 = 1900
	sentinelYear1903 = 1903
)

var noValueTokens = map[string]struct{}{
	"off":  {},
	"nan":  {},
	"none": {},
	"n/a":  {},
	"na":   {},
	"":     {},
}

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)

var datePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// IsNoValueToken reports whether the trimmed, lowercased string is one of
// the recognized placeholder tokens meaning "no value".
func IsNoValueToken(s string) bool {
	_, ok := noValueTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// ParseTimeOfDay extracts a canonical HH:MM:SS time of day from a raw cell.
// Timestamps inside the plausible year range yield their time component.
// Timestamps in the known sentinel years recover their time component when
// it is not midnight; all other out-of-range timestamps are absent. Text is
// scanned for an embedded H:MM(:SS) pattern and range-checked.
func ParseTimeOfDay(c spreadsheet.Cell) (string, bool) {
	switch c.Kind {
	case spreadsheet.CellTimestamp:
		year := c.Time.Year()
		if year >= MinYear && year <= MaxYear {
			return c.Time.Format("15:04:05"), true
		}
		if year < MinYear && (year == sentinelYear1900 || year == sentinelYear1903) {
			clock := c.Time.Format("15:04:05")
			if clock != "00:00:00" {
				return clock, true
			}
		}
		return "", false
	case spreadsheet.CellText:
		return parseClockText(c.Text)
	default:
		return "", false
	}
}

func parseClockText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if IsNoValueToken(s) {
		return "", false
	}

	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds := 0
	if m[3] != "" {
		seconds, _ = strconv.Atoi(m[3])
	}
	if hours > 23 || minutes > 59 || seconds > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds), true
}

// TimeToHours converts a canonical HH:MM:SS string to decimal hours. The
// empty string (an absent time) converts to 0.
func TimeToHours(clock string) float64 {
	if clock == "" {
		return 0
	}
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0
	}
	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0
	}
	var seconds float64
	if len(parts) > 2 {
		seconds, err = strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0
		}
	}
	return hours + minutes/60 + seconds/3600
}

// Fallback layouts for dates that arrive as free text without an embedded
// YYYY-MM-DD substring.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1-2-2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseDate extracts a calendar date from a raw cell. Timestamp cells with
// sentinel years are rejected outright; unlike times there is no recovery
// path for dates. Text is searched for an embedded YYYY-MM-DD substring
// first, covering decorated strings like "2025-10-01 (Mon)", then parsed
// against common date layouts. The resulting year must be plausible.
func ParseDate(c spreadsheet.Cell) (time.Time, bool) {
	switch c.Kind {
	case spreadsheet.CellTimestamp:
		return dateInRange(c.Time)
	case spreadsheet.CellText:
		return parseDateText(c.Text)
	default:
		return time.Time{}, false
	}
}

func parseDateText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if IsNoValueToken(s) {
		return time.Time{}, false
	}

	if m := datePattern.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			if d, ok := dateInRange(t); ok {
				return d, ok
			}
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateInRange(t)
		}
	}
	return time.Time{}, false
}

func dateInRange(t time.Time) (time.Time, bool) {
	year := t.Year()
	if year < MinYear || year > MaxYear {
		return time.Time{}, false
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
