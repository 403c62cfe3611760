package overtime

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/overtime-analyzer/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/validator"
	"github.com/cmlabs-hris/overtime-analyzer/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubDecoder struct {
	sheets []spreadsheet.Sheet
	err    error
}

func (d *stubDecoder) Decode(io.Reader, string) ([]spreadsheet.Sheet, error) {
	return d.sheets, d.err
}

func newTestService(sheets ...spreadsheet.Sheet) (overtime.Service, *memory.DatasetStore) {
	store := memory.NewDatasetStore()
	return NewOvertimeService(store, &stubDecoder{sheets: sheets}), store
}

func uploadRequest() overtime.IngestRequest {
	return overtime.IngestRequest{
		Filename: "overtime_export.xlsx",
		Reader:   strings.NewReader("workbook bytes"),
	}
}

func dataRow(pin int, name, date, worked, target string) spreadsheet.Row {
	return spreadsheet.Row{
		PinCode:     spreadsheet.Number(float64(pin)),
		FullName:    spreadsheet.Text(name),
		Date:        spreadsheet.Text(date),
		HoursWorked: spreadsheet.Text(worked),
		Target:      spreadsheet.Text(target),
	}
}

func augustSheet() spreadsheet.Sheet {
	return spreadsheet.Sheet{
		Name:    "August 2025",
		Columns: attendanceColumns(false),
		Rows: []spreadsheet.Row{
			dataRow(1001, "Ada Lovelace", "2025-08-04", "10:00:00", "08:00:00"),
			dataRow(1001, "Ada Lovelace", "2025-08-05", "08:00:00", "08:00:00"),
			dataRow(1002, "Grace Hopper", "2025-08-04", "09:30:00", "08:00:00"),
		},
	}
}

func septemberSheet() spreadsheet.Sheet {
	return spreadsheet.Sheet{
		Name:    "Sept 2025",
		Columns: attendanceColumns(false),
		Rows: []spreadsheet.Row{
			dataRow(1002, "Grace Hopper", "2025-09-01", "07:00:00", "08:00:00"),
			dataRow(1003, "Edsger Dijkstra", "2025-09-01", "11:00:00", "08:00:00"),
		},
	}
}

// Test ingestion of a workbook with eligible and ineligible sheets
func TestOvertimeService_IngestWorkbook_Success(t *testing.T) {
	ctx := context.Background()
	notes := spreadsheet.Sheet{Name: "Random Notes", Columns: attendanceColumns(true)}
	noDate := spreadsheet.Sheet{
		Name:    "July 2025",
		Columns: spreadsheet.ColumnSet{PinCode: true, FullName: true},
		Rows:    []spreadsheet.Row{dataRow(1, "x", "2025-07-01", "", "")},
	}
	svc, store := newTestService(augustSheet(), notes, noDate, septemberSheet())

	result, err := svc.IngestWorkbook(ctx, uploadRequest())

	require.NoError(t, err)
	assert.Equal(t, 5, result.Records)
	assert.Equal(t, 2, result.SheetsLoaded)
	assert.ElementsMatch(t, []string{"Random Notes", "July 2025"}, result.SheetsSkipped)
	assert.NotEmpty(t, result.DatasetID)
	assert.Equal(t, "overtime_export.xlsx", result.Filename)

	records, info, ok := store.Snapshot(ctx)
	require.True(t, ok)
	assert.Len(t, records, 5)
	assert.Equal(t, result.DatasetID, info.ID)

	// Sheet-then-row order is preserved across sheets.
	assert.Equal(t, "August", records[0].Month)
	assert.Equal(t, "September", records[4].Month)
}

// Test a sheet whose name has a month token but whose rows all fail date validation
func TestOvertimeService_IngestWorkbook_AllDatesInvalid(t *testing.T) {
	ctx := context.Background()
	sheet := spreadsheet.Sheet{
		Name:    "August",
		Columns: attendanceColumns(false),
		Rows: []spreadsheet.Row{
			dataRow(1, "Ada Lovelace", "garbage", "08:00:00", "08:00:00"),
			dataRow(2, "Grace Hopper", "also garbage", "08:00:00", "08:00:00"),
		},
	}
	svc, store := newTestService(sheet)

	_, err := svc.IngestWorkbook(ctx, uploadRequest())

	assert.ErrorIs(t, err, overtime.ErrNoValidData)
	_, _, ok := store.Snapshot(ctx)
	assert.False(t, ok)
}

// Test that a failed ingestion keeps the previously loaded dataset
func TestOvertimeService_IngestWorkbook_FailureKeepsPriorDataset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDatasetStore()
	decoder := &stubDecoder{sheets: []spreadsheet.Sheet{augustSheet()}}
	svc := NewOvertimeService(store, decoder)

	first, err := svc.IngestWorkbook(ctx, uploadRequest())
	require.NoError(t, err)

	decoder.sheets = []spreadsheet.Sheet{{Name: "Random Notes"}}
	_, err = svc.IngestWorkbook(ctx, uploadRequest())
	assert.ErrorIs(t, err, overtime.ErrNoValidData)

	_, info, ok := store.Snapshot(ctx)
	require.True(t, ok)
	assert.Equal(t, first.DatasetID, info.ID)
}

func TestOvertimeService_IngestWorkbook_RejectsBadUploads(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(augustSheet())

	_, err := svc.IngestWorkbook(ctx, overtime.IngestRequest{
		Filename: "notes.csv",
		Reader:   strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, overtime.ErrInvalidFileType)

	_, err = svc.IngestWorkbook(ctx, overtime.IngestRequest{
		Filename: "attendance.xlsx",
	})
	assert.ErrorIs(t, err, overtime.ErrNoFileProvided)

	_, err = svc.IngestWorkbook(ctx, overtime.IngestRequest{
		Reader: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, overtime.ErrNoFileProvided)

	// Rejected uploads never reach the decoder or the store.
	_, _, ok := store.Snapshot(ctx)
	assert.False(t, ok)
}

func TestOvertimeService_EmployeeDetails_InvalidFilter(t *testing.T) {
	svc, _ := newTestService(augustSheet())

	pin := -1
	_, err := svc.EmployeeDetails(context.Background(), overtime.DetailFilter{PinCode: &pin})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "pin_code")
}

func TestOvertimeService_QueryBeforeLoad(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.SummaryByEmployee(ctx)
	assert.ErrorIs(t, err, overtime.ErrNoDataLoaded)

	_, err = svc.DailyTotals(ctx)
	assert.ErrorIs(t, err, overtime.ErrNoDataLoaded)

	_, err = svc.ExportSummary(ctx)
	assert.ErrorIs(t, err, overtime.ErrNoDataLoaded)
}

func TestOvertimeService_SummaryByEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(augustSheet(), septemberSheet())
	_, err := svc.IngestWorkbook(ctx, uploadRequest())
	require.NoError(t, err)

	summaries, err := svc.SummaryByEmployee(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// Descending by total overtime: Dijkstra 3.0, Ada 2.0, Grace 0.5.
	assert.Equal(t, "Edsger Dijkstra", summaries[0].FullName)
	assert.Equal(t, "Ada Lovelace", summaries[1].FullName)
	assert.Equal(t, "Grace Hopper", summaries[2].FullName)

	assert.InDelta(t, 3.0, summaries[0].TotalOvertimeHours, 1e-9)
	assert.Equal(t, "03:00:00", summaries[0].TotalOvertimeHHMMSS)

	ada := summaries[1]
	assert.Equal(t, 1001, ada.PinCode)
	assert.Equal(t, 2, ada.DaysWorked)
	assert.InDelta(t, 18.0, ada.TotalHoursWorked, 1e-9)
	assert.Equal(t, "2025-08-04", ada.FirstDate)
	assert.Equal(t, "2025-08-05", ada.LastDate)
	assert.InDelta(t, 1.0, ada.AvgOvertimeHours, 1e-9)

	// Grace is under target across both months.
	assert.InDelta(t, 0.5, summaries[2].TotalOvertimeHours, 1e-9)

	// Per-group totals add up to the dataset-wide total.
	var groupTotal float64
	for _, s := range summaries {
		groupTotal += s.TotalOvertimeHours
	}
	stats, err := svc.OverallStats(ctx)
	require.NoError(t, err)
	assert.InDelta(t, stats.TotalOvertimeHours, groupTotal, 0.01)
}

func TestOvertimeService_SummaryByMonth(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(augustSheet(), septemberSheet())
	_, err := svc.IngestWorkbook(ctx, uploadRequest())
	require.NoError(t, err)

	summaries, err := svc.SummaryByMonth(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Encounter order, not alphabetical.
	assert.Equal(t, "August", summaries[0].Month)
	assert.Equal(t, "September", summaries[1].Month)

	august := summaries[0]
	assert.Equal(t, 3, august.TotalRecords)
	assert.Equal(t, 2, august.UniqueEmployees)
	assert.InDelta(t, 3.5, august.TotalOvertimeHours, 1e-9)
	assert.InDelta(t, 27.5, august.TotalHoursWorked, 1e-9)
}

func TestOvertimeService_DailyTotals(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(septemberSheet(), augustSheet())
	_, err := svc.IngestWorkbook(ctx, uploadRequest())
	require.NoError(t, err)

	totals, err := svc.DailyTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 3)

	// Ascending by date regardless of sheet order.
	assert.Equal(t, "2025-08-04", totals[0].Date)
	assert.Equal(t, "2025-08-05", totals[1].Date)
	assert.Equal(t, "2025-09-01", totals[2].Date)

	assert.Equal(t, 2, totals[0].EmployeeCount)
	assert.InDelta(t, 3.5, totals[0].TotalOvertimeHours, 1e-9)
	assert.Equal(t, 2, totals[2].EmployeeCount)
}

func TestOvertimeService_TopOvertimeEmployees(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(augustSheet(), septemberSheet())
	_, err := svc.IngestWorkbook(ctx, uploadRequest())
	require.NoError(t, err)

	top, err := svc.TopOvertimeEmployees(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Edsger Dijkstra", top[0].FullName)

	// An n beyond the number of employees returns everyone, not an error.
	all, err := svc.TopOvertimeEmployees(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOvertimeService_EmployeeDetails(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(augustSheet(), septemberSheet())
	_, err := svc.IngestWorkbook(ctx, uploadRequest())
	require.NoError(t, err)

	pin := 1002
	byPin, err := svc.EmployeeDetails(ctx, overtime.DetailFilter{PinCode: &pin})
	require.NoError(t, err)
	require.Len(t, byPin, 2)
	assert.Equal(t, "2025-08-04", byPin[0].Date)
	assert.Equal(t, "2025-09-01", byPin[1].Date)

	name := "grace"
	byName, err := svc.EmployeeDetails(ctx, overtime.DetailFilter{Name: &name})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	// Combined filters use AND semantics.
	other := "dijkstra"
	both, err := svc.EmployeeDetails(ctx, overtime.DetailFilter{PinCode: &pin, Name: &other})
	require.NoError(t, err)
	assert.Empty(t, both)
}

func TestOvertimeService_OverallStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(augustSheet(), septemberSheet())
	result, err := svc.IngestWorkbook(ctx, uploadRequest())
	require.NoError(t, err)

	stats, err := svc.OverallStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, result.DatasetID, stats.DatasetID)
	assert.Equal(t, "overtime_export.xlsx", stats.SourceFilename)
	assert.Equal(t, 5, stats.TotalRecords)
	assert.Equal(t, 3, stats.UniqueEmployees)
	assert.InDelta(t, 5.5, stats.TotalOvertimeHours, 1e-9)
	assert.InDelta(t, 45.5, stats.TotalHoursWorked, 1e-9)
	assert.InDelta(t, 1.1, stats.AvgOvertimePerRecord, 1e-9)
	assert.Equal(t, "05:30:00", stats.TotalOvertimeHHMMSS)
}

func TestOvertimeService_ExportSummary(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(augustSheet(), septemberSheet())
	_, err := svc.IngestWorkbook(ctx, uploadRequest())
	require.NoError(t, err)

	export, err := svc.ExportSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "overtime_summary.xlsx", export.Filename)
	require.NotEmpty(t, export.Content)

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t,
		[]string{"By Employee", "By Month", "Daily Totals", "Top 20 Employees"},
		f.GetSheetList())

	name, err := f.GetCellValue("By Employee", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Edsger Dijkstra", name)
}

func TestOvertimeService_ResetDataset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(augustSheet())
	_, err := svc.IngestWorkbook(ctx, uploadRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ResetDataset(ctx))

	_, err = svc.SummaryByEmployee(ctx)
	assert.ErrorIs(t, err, overtime.ErrNoDataLoaded)
}
