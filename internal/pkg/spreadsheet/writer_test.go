package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	tables := []Table{
		{
			Sheet:  "By Employee",
			Header: []string{"PIN CODE", "FULL NAME", "TOTAL OVERTIME HOURS"},
			Rows: [][]any{
				{1001, "Ada Lovelace", 2.5},
				{1002, "Grace Hopper", 1.0},
			},
		},
		{
			Sheet:  "Daily Totals",
			Header: []string{"DATE", "TOTAL OVERTIME HOURS"},
			Rows:   [][]any{{"2025-08-04", 3.5}},
		},
	}

	content, err := WriteWorkbook(tables)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"By Employee", "Daily Totals"}, f.GetSheetList())

	header, err := f.GetCellValue("By Employee", "B1")
	require.NoError(t, err)
	assert.Equal(t, "FULL NAME", header)

	name, err := f.GetCellValue("By Employee", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", name)

	hours, err := f.GetCellValue("Daily Totals", "B2")
	require.NoError(t, err)
	assert.Equal(t, "3.5", hours)
}

func TestWriteWorkbook_HeaderOnlyTable(t *testing.T) {
	content, err := WriteWorkbook([]Table{{
		Sheet:  "By Month",
		Header: []string{"MONTH", "TOTAL RECORDS"},
	}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("By Month")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"MONTH", "TOTAL RECORDS"}, rows[0])
}
