package overtime

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/overtime-analyzer/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/clock"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/spreadsheet"
)

type monthMapping struct {
	token string
	label string
}

// Month tokens matched as case-insensitive substrings of sheet names. Order
// matters: the first matching entry wins when a name contains several.
var monthTable = []monthMapping{
	{"january", "January"}, {"jan", "January"},
	{"february", "February"}, {"feb", "February"},
	{"march", "March"}, {"mar", "March"},
	{"april", "April"}, {"apr", "April"},
	{"may", "May"},
	{"june", "June"}, {"jun", "June"},
	{"july", "July"}, {"jul", "July"},
	{"august", "August"}, {"aug", "August"},
	{"september", "September"}, {"sep", "September"}, {"sept", "September"},
	{"october", "October"}, {"oct", "October"},
	{"november", "November"}, {"nov", "November"},
	{"december", "December"}, {"dec", "December"},
}

// monthLabel finds a recognizable month name or abbreviation in the sheet
// name and returns its normalized label.
func monthLabel(sheetName string) (string, bool) {
	lower := strings.ToLower(sheetName)
	for _, m := range monthTable {
		if strings.Contains(lower, m.token) {
			return m.label, true
		}
	}
	return "", false
}

// eligibleColumns reports whether the sheet carries the identity columns
// required of an overtime sheet.
func eligibleColumns(c spreadsheet.ColumnSet) bool {
	return c.PinCode && c.FullName && c.Date
}

// normalizeSheet converts an eligible sheet's rows into canonical records
// carrying the given month label. Rows whose date cannot be validated are
// dropped. The returned slice may be empty.
func normalizeSheet(sheet spreadsheet.Sheet, month string) []overtime.Record {
	var records []overtime.Record
	for _, row := range sheet.Rows {
		date, ok := clock.ParseDate(row.Date)
		if !ok {
			continue
		}

		clockIn, _ := clock.ParseTimeOfDay(row.ClockIn)
		clockOut, _ := clock.ParseTimeOfDay(row.ClockOut)
		breakTime, _ := clock.ParseTimeOfDay(row.Break)
		worked, _ := clock.ParseTimeOfDay(row.HoursWorked)
		target, _ := clock.ParseTimeOfDay(row.Target)

		workedDecimal := clock.TimeToHours(worked)
		targetDecimal := clock.TimeToHours(target)
		calculated := workedDecimal - targetDecimal

		overtimeDecimal := calculated
		if sheet.Columns.OvertimeHours {
			overtimeDecimal = reconcileOvertime(row.OvertimeHours, calculated)
		}

		records = append(records, overtime.Record{
			PinCode:              coercePin(row.PinCode),
			FullName:             cellString(row.FullName),
			Date:                 date,
			ClockIn:              clockIn,
			ClockOut:             clockOut,
			Break:                breakTime,
			HoursWorked:          worked,
			Target:               target,
			HoursWorkedDecimal:   workedDecimal,
			TargetDecimal:        targetDecimal,
			OvertimeHoursDecimal: overtimeDecimal,
			Month:                month,
		})
	}

	// Final correction pass: a decoded overtime still above the plausible
	// single-day maximum is a wrap artifact that slipped through, so it is
	// replaced with the worked-minus-target figure. Negative values are
	// legitimate under-target rows and stay as decoded.
	for i := range records {
		if records[i].OvertimeHoursDecimal > maxDailyOvertimeHours {
			records[i].OvertimeHoursDecimal = records[i].HoursWorkedDecimal - records[i].TargetDecimal
		}
	}
	return records
}

// coercePin converts the identifier cell to an integer. Sheets with missing
// or garbage identifiers are still counted, so anything that cannot be
// coerced defaults to 1 instead of dropping the row.
func coercePin(c spreadsheet.Cell) int {
	switch c.Kind {
	case spreadsheet.CellNumber:
		return int(c.Number)
	case spreadsheet.CellText:
		if v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64); err == nil {
			return int(v)
		}
	}
	return 1
}

func cellString(c spreadsheet.Cell) string {
	switch c.Kind {
	case spreadsheet.CellText:
		return strings.TrimSpace(c.Text)
	case spreadsheet.CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case spreadsheet.CellTimestamp:
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}
