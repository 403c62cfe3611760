package overtime

import (
	"time"
)

// Record is one fully normalized attendance row: validated date, integer
// employee identifier, canonical time strings, and decimal-hours figures.
// Records are immutable once stored in a dataset.
type Record struct {
	PinCode              int
	FullName             string
	Date                 time.Time
	ClockIn              string
	ClockOut             string
	Break                string
	HoursWorked          string
	Target               string
	HoursWorkedDecimal   float64
	TargetDecimal        float64
	OvertimeHoursDecimal float64

	// Month is the normalized label of the sheet the record came from. It is
	// deliberately not derived from Date; a misnamed sheet keeps its label.
	Month string
}

// DatasetInfo describes one completed ingestion.
type DatasetInfo struct {
	ID         string
	SourceName string
	LoadedAt   time.Time
	Records    int
}
