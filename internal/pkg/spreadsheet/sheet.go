package spreadsheet

// Column headers of the attendance export contract. Matching is
// exact-string, case and spacing as authored by the upstream tool.
const (
	ColPinCode       = "PIN CODE"
	ColFullName      = "FULL NAME"
	ColDate          = "DATE"
	ColClockIn       = "T&A IN"
	ColClockOut      = "T&A OUT"
	ColBreak         = "T&A BREAK"
	ColHoursWorked   = "HOURS WORKED"
	ColOvertimeHours = "OVERTIME HOURS"
	ColTarget        = "TARGET"
)

// ColumnSet records which contract columns were present in a sheet's header
// row. Headerless columns are dropped during decoding and never show up here.
type ColumnSet struct {
	PinCode       bool
	FullName      bool
	Date          bool
	ClockIn       bool
	ClockOut      bool
	Break         bool
	HoursWorked   bool
	OvertimeHours bool
	Target        bool
}

// Row carries the contract columns of one data row. Columns missing from the
// sheet decode as absent cells; consult the sheet's ColumnSet to distinguish
// an absent value from an absent column.
type Row struct {
	PinCode       Cell
	FullName      Cell
	Date          Cell
	ClockIn       Cell
	ClockOut      Cell
	Break         Cell
	HoursWorked   Cell
	OvertimeHours Cell
	Target        Cell
}

// Sheet is one decoded worksheet.
type Sheet struct {
	Name    string
	Columns ColumnSet
	Rows    []Row
}
