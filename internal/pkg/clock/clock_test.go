package clock

import (
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay_TimestampInRange(t *testing.T) {
	ts := time.Date(2025, 10, 1, 8, 30, 15, 0, time.UTC)

	clock, ok := ParseTimeOfDay(spreadsheet.Timestamp(ts))

	require.True(t, ok)
	assert.Equal(t, "08:30:15", clock)
}

func TestParseTimeOfDay_SentinelYearRecoversTime(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want string
		ok   bool
	}{
		{
			name: "1903 with time component",
			ts:   time.Date(1903, 12, 31, 22, 57, 17, 0, time.UTC),
			want: "22:57:17",
			ok:   true,
		},
		{
			name: "1900 with time component",
			ts:   time.Date(1900, 1, 1, 23, 30, 0, 0, time.UTC),
			want: "23:30:00",
			ok:   true,
		},
		{
			name: "sentinel midnight is absent",
			ts:   time.Date(1903, 12, 31, 0, 0, 0, 0, time.UTC),
			ok:   false,
		},
		{
			name: "other pre-2000 year is absent",
			ts:   time.Date(1899, 12, 30, 12, 0, 0, 0, time.UTC),
			ok:   false,
		},
		{
			name: "far future year is absent",
			ts:   time.Date(2150, 1, 1, 9, 0, 0, 0, time.UTC),
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock, ok := ParseTimeOfDay(spreadsheet.Timestamp(tt.ts))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, clock)
		})
	}
}

func TestParseTimeOfDay_Text(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"08:30:15", "08:30:15", true},
		{"8:05", "08:05:00", true},
		{"shift ends 17:45", "17:45:00", true},
		{"23:59:59", "23:59:59", true},
		{"24:00", "", false},
		{"12:75", "", false},
		{"10:30:99", "", false},
		{"OFF", "", false},
		{"n/a", "", false},
		{"NaN", "", false},
		{"none", "", false},
		{"  ", "", false},
		{"no colon here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			clock, ok := ParseTimeOfDay(spreadsheet.Text(tt.input))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, clock)
		})
	}
}

func TestParseTimeOfDay_OtherKindsAbsent(t *testing.T) {
	_, ok := ParseTimeOfDay(spreadsheet.Absent())
	assert.False(t, ok)

	_, ok = ParseTimeOfDay(spreadsheet.Number(8.5))
	assert.False(t, ok)
}

func TestTimeToHours(t *testing.T) {
	assert.Equal(t, 0.0, TimeToHours(""))
	assert.Equal(t, 8.0, TimeToHours("08:00:00"))
	assert.InDelta(t, 23.5, TimeToHours("23:30:00"), 1e-9)
	assert.InDelta(t, 9.5042, TimeToHours("09:30:15"), 0.0001)
}

func TestParseDate_Timestamp(t *testing.T) {
	date, ok := ParseDate(spreadsheet.Timestamp(time.Date(2025, 10, 1, 14, 30, 0, 0, time.UTC)))
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), date)

	// Sentinel timestamps carry no usable date: no recovery, unlike times.
	_, ok = ParseDate(spreadsheet.Timestamp(time.Date(1903, 12, 31, 22, 57, 17, 0, time.UTC)))
	assert.False(t, ok)

	_, ok = ParseDate(spreadsheet.Timestamp(time.Date(2101, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, ok)
}

func TestParseDate_Text(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2025-10-01", "2025-10-01", true},
		{"2025-10-01 (Mon)", "2025-10-01", true},
		{"note 2025-10-01 revised", "2025-10-01", true},
		{"10/01/2025", "2025-10-01", true},
		{"Jan 2, 2025", "2025-01-02", true},
		{"1999-12-31", "", false},
		{"2101-01-01", "", false},
		{"off", "", false},
		{"N/A", "", false},
		{"", "", false},
		{"not a date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, ok := ParseDate(spreadsheet.Text(tt.input))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, date.Format("2006-01-02"))
			}
		})
	}
}

func TestParseDate_OtherKindsAbsent(t *testing.T) {
	_, ok := ParseDate(spreadsheet.Absent())
	assert.False(t, ok)

	_, ok = ParseDate(spreadsheet.Number(45932))
	assert.False(t, ok)
}

// Every valid clock string must survive parse → decimal hours → format.
func TestClockRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 1, 15, 30, 45, 59} {
			for _, second := range []int{0, 1, 28, 30, 59} {
				input := fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)

				clock, ok := ParseTimeOfDay(spreadsheet.Text(input))
				require.True(t, ok, input)

				assert.Equal(t, input, FormatHHMMSS(TimeToHours(clock)), input)
			}
		}
	}
}
