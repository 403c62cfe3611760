package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Decoder reads an uploaded workbook into decoded sheets. It understands
// modern .xlsx files via excelize and legacy .xls files via extrame/xls.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads every worksheet of the workbook and maps contract columns
// into typed rows. Sheets are returned in workbook order; no eligibility
// filtering happens here.
func (d *Decoder) Decode(r io.Reader, filename string) ([]Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xls" {
		return decodeXLS(data)
	}
	return decodeXLSX(data)
}

func decodeXLSX(data []byte) ([]Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		formatted, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q raw values: %w", name, err)
		}
		sheets = append(sheets, buildXLSXSheet(f, name, formatted, raw))
	}
	return sheets, nil
}

func buildXLSXSheet(f *excelize.File, name string, formatted, raw [][]string) Sheet {
	sheet := Sheet{Name: name}
	if len(formatted) == 0 {
		return sheet
	}

	index := headerIndex(formatted[0])
	sheet.Columns = columnSet(index)

	for ri := 1; ri < len(formatted); ri++ {
		var rawRow []string
		if ri < len(raw) {
			rawRow = raw[ri]
		}
		row := Row{}
		for header, ci := range index {
			cell := classifyXLSXCell(f, name, ci, ri, at(formatted[ri], ci), at(rawRow, ci))
			setColumn(&row, header, cell)
		}
		if rowEmpty(row) {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// classifyXLSXCell turns one cell into a tagged variant. Number-formatted
// date and time cells are recognized by their style: whole-or-larger serials
// become timestamps while pure day fractions are handed on as HH:MM:SS text,
// matching what the upstream authoring tool means by them.
func classifyXLSXCell(f *excelize.File, sheetName string, col, row int, formatted, raw string) Cell {
	formatted = strings.TrimSpace(formatted)
	raw = strings.TrimSpace(raw)
	if formatted == "" && raw == "" {
		return Absent()
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if formatted != raw && isDateStyled(f, sheetName, col, row) {
			if serial >= 0 && serial < 1 {
				return Text(fractionToClock(serial))
			}
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return Timestamp(t)
			}
		}
		return Number(serial)
	}

	if formatted == "" {
		formatted = raw
	}
	return Text(formatted)
}

// Built-in number format IDs that render as dates or times.
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true,
	21: true, 22: true, 27: true, 28: true, 29: true, 30: true, 31: true,
	32: true, 33: true, 34: true, 35: true, 36: true, 45: true, 46: true,
	47: true, 50: true, 51: true, 52: true, 53: true, 54: true, 55: true,
	56: true, 57: true, 58: true,
}

func isDateStyled(f *excelize.File, sheetName string, col, row int) bool {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	styleID, err := f.GetCellStyle(sheetName, axis)
	if err != nil {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if builtInDateFormats[style.NumFmt] {
		return true
	}
	if style.CustomNumFmt != nil {
		return formatLooksTemporal(*style.CustomNumFmt)
	}
	return false
}

// formatLooksTemporal scans a custom number format for date/time tokens,
// ignoring quoted literals and bracketed sections.
func formatLooksTemporal(format string) bool {
	var inQuote, inBracket bool
	for _, r := range format {
		switch {
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case inBracket:
			if r == ']' {
				inBracket = false
			}
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			switch r {
			case 'y', 'm', 'd', 'h', 's', 'Y', 'M', 'D', 'H', 'S':
				return true
			}
		}
	}
	return false
}

// fractionToClock renders an Excel day fraction as HH:MM:SS.
func fractionToClock(serial float64) string {
	total := int(serial*86400 + 0.5)
	total %= 86400
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func decodeXLS(data []byte) ([]Sheet, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls workbook: %w", err)
	}

	var sheets []Sheet
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		var grid [][]string
		for ri := 0; ri <= int(ws.MaxRow); ri++ {
			row := ws.Row(ri)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for ci := 0; ci < row.LastCol(); ci++ {
				cells[ci] = row.Col(ci)
			}
			grid = append(grid, cells)
		}
		sheets = append(sheets, buildTextSheet(ws.Name, grid))
	}
	return sheets, nil
}

func buildTextSheet(name string, grid [][]string) Sheet {
	sheet := Sheet{Name: name}
	if len(grid) == 0 {
		return sheet
	}

	index := headerIndex(grid[0])
	sheet.Columns = columnSet(index)

	for ri := 1; ri < len(grid); ri++ {
		row := Row{}
		for header, ci := range index {
			setColumn(&row, header, classifyText(at(grid[ri], ci)))
		}
		if rowEmpty(row) {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// Legacy .xls cells arrive as formatted strings only, so timestamps are
// recognized by trying the date layouts the authoring tools emit.
var textDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"01/02/2006 15:04",
	"1/2/06 15:04",
	"01/02/06 15:04",
	"1/2/2006",
	"01/02/2006",
	"1-2-2006",
	"01-02-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func classifyText(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Absent()
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(v)
	}
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp(t)
		}
	}
	return Text(s)
}

// headerIndex maps contract column names to their position in the header
// row. Cells without a header are decoder artifacts and are dropped.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int)
	for ci, name := range header {
		name = strings.TrimSpace(name)
		switch name {
		case ColPinCode, ColFullName, ColDate, ColClockIn, ColClockOut,
			ColBreak, ColHoursWorked, ColOvertimeHours, ColTarget:
			if _, seen := index[name]; !seen {
				index[name] = ci
			}
		}
	}
	return index
}

func columnSet(index map[string]int) ColumnSet {
	_, pin := index[ColPinCode]
	_, name := index[ColFullName]
	_, date := index[ColDate]
	_, in := index[ColClockIn]
	_, out := index[ColClockOut]
	_, brk := index[ColBreak]
	_, worked := index[ColHoursWorked]
	_, ot := index[ColOvertimeHours]
	_, target := index[ColTarget]
	return ColumnSet{
		PinCode:       pin,
		FullName:      name,
		Date:          date,
		ClockIn:       in,
		ClockOut:      out,
		Break:         brk,
		HoursWorked:   worked,
		OvertimeHours: ot,
		Target:        target,
	}
}

func setColumn(row *Row, header string, cell Cell) {
	switch header {
	case ColPinCode:
		row.PinCode = cell
	case ColFullName:
		row.FullName = cell
	case ColDate:
		row.Date = cell
	case ColClockIn:
		row.ClockIn = cell
	case ColClockOut:
		row.ClockOut = cell
	case ColBreak:
		row.Break = cell
	case ColHoursWorked:
		row.HoursWorked = cell
	case ColOvertimeHours:
		row.OvertimeHours = cell
	case ColTarget:
		row.Target = cell
	}
}

func rowEmpty(row Row) bool {
	return row.PinCode.IsAbsent() && row.FullName.IsAbsent() && row.Date.IsAbsent() &&
		row.ClockIn.IsAbsent() && row.ClockOut.IsAbsent() && row.Break.IsAbsent() &&
		row.HoursWorked.IsAbsent() && row.OvertimeHours.IsAbsent() && row.Target.IsAbsent()
}

func at(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}
