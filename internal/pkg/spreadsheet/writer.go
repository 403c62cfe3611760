package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Table is one named sheet of an export workbook.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// WriteWorkbook renders the tables as one xlsx workbook, one sheet per
// table, and returns the encoded bytes.
func WriteWorkbook(tables []Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", table.Sheet); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", table.Sheet, err)
			}
		} else {
			if _, err := f.NewSheet(table.Sheet); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", table.Sheet, err)
			}
		}

		header := make([]any, len(table.Header))
		for ci, name := range table.Header {
			header[ci] = name
		}
		if err := f.SetSheetRow(table.Sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header of sheet %q: %w", table.Sheet, err)
		}

		for ri, row := range table.Rows {
			cell, err := excelize.CoordinatesToCellName(1, ri+2)
			if err != nil {
				return nil, fmt.Errorf("address row %d of sheet %q: %w", ri+2, table.Sheet, err)
			}
			if err := f.SetSheetRow(table.Sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("write row %d of sheet %q: %w", ri+2, table.Sheet, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
