package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/overtime-analyzer/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/clock"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/spreadsheet"
	"github.com/google/uuid"
)

const topEmployeesExportCount = 20

type OvertimeServiceImpl struct {
	store   overtime.DatasetStore
	decoder overtime.WorkbookDecoder
}

func NewOvertimeService(store overtime.DatasetStore, decoder overtime.WorkbookDecoder) overtime.Service {
	return &OvertimeServiceImpl{
		store:   store,
		decoder: decoder,
	}
}

// IngestWorkbook implements overtime.Service.
func (s *OvertimeServiceImpl) IngestWorkbook(ctx context.Context, req overtime.IngestRequest) (overtime.IngestResult, error) {
	if err := req.Validate(); err != nil {
		return overtime.IngestResult{}, err
	}

	sheets, err := s.decoder.Decode(req.Reader, req.Filename)
	if err != nil {
		return overtime.IngestResult{}, fmt.Errorf("failed to decode workbook %q: %w", req.Filename, err)
	}

	var records []overtime.Record
	var skipped []string
	loaded := 0
	for _, sheet := range sheets {
		month, ok := monthLabel(sheet.Name)
		if !ok {
			skipped = append(skipped, sheet.Name)
			continue
		}
		if !eligibleColumns(sheet.Columns) {
			skipped = append(skipped, sheet.Name)
			continue
		}
		normalized := normalizeSheet(sheet, month)
		if len(normalized) == 0 {
			skipped = append(skipped, sheet.Name)
			continue
		}
		records = append(records, normalized...)
		loaded++
	}

	if len(skipped) > 0 {
		slog.Warn("skipped ineligible sheets",
			"filename", req.Filename,
			"sheets", skipped,
		)
	}

	// All-or-nothing: a workbook yielding no records fails the whole upload
	// and leaves any previously loaded dataset as it was.
	if len(records) == 0 {
		return overtime.IngestResult{}, overtime.ErrNoValidData
	}

	info := overtime.DatasetInfo{
		ID:         uuid.NewString(),
		SourceName: req.Filename,
		LoadedAt:   time.Now().UTC(),
		Records:    len(records),
	}
	s.store.Replace(ctx, records, info)

	return overtime.IngestResult{
		DatasetID:     info.ID,
		Filename:      req.Filename,
		Records:       len(records),
		SheetsLoaded:  loaded,
		SheetsSkipped: skipped,
	}, nil
}

func (s *OvertimeServiceImpl) snapshot(ctx context.Context) ([]overtime.Record, overtime.DatasetInfo, error) {
	records, info, ok := s.store.Snapshot(ctx)
	if !ok || len(records) == 0 {
		return nil, overtime.DatasetInfo{}, overtime.ErrNoDataLoaded
	}
	return records, info, nil
}

// SummaryByEmployee implements overtime.Service.
func (s *OvertimeServiceImpl) SummaryByEmployee(ctx context.Context) ([]overtime.EmployeeSummary, error) {
	records, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeByEmployee(records), nil
}

// SummaryByMonth implements overtime.Service.
func (s *OvertimeServiceImpl) SummaryByMonth(ctx context.Context) ([]overtime.MonthSummary, error) {
	records, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeByMonth(records), nil
}

// DailyTotals implements overtime.Service.
func (s *OvertimeServiceImpl) DailyTotals(ctx context.Context) ([]overtime.DailyTotal, error) {
	records, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeDaily(records), nil
}

// TopOvertimeEmployees implements overtime.Service.
func (s *OvertimeServiceImpl) TopOvertimeEmployees(ctx context.Context, n int) ([]overtime.EmployeeSummary, error) {
	summaries, err := s.SummaryByEmployee(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && n < len(summaries) {
		summaries = summaries[:n]
	}
	return summaries, nil
}

// EmployeeDetails implements overtime.Service.
func (s *OvertimeServiceImpl) EmployeeDetails(ctx context.Context, filter overtime.DetailFilter) ([]overtime.RecordDetail, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	records, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return filterDetails(records, filter), nil
}

// OverallStats implements overtime.Service.
func (s *OvertimeServiceImpl) OverallStats(ctx context.Context) (overtime.OverallStats, error) {
	records, info, err := s.snapshot(ctx)
	if err != nil {
		return overtime.OverallStats{}, err
	}

	var totalOvertime, totalWorked float64
	employees := make(map[int]struct{})
	for _, rec := range records {
		totalOvertime += rec.OvertimeHoursDecimal
		totalWorked += rec.HoursWorkedDecimal
		employees[rec.PinCode] = struct{}{}
	}
	avg := totalOvertime / float64(len(records))

	return overtime.OverallStats{
		DatasetID:             info.ID,
		SourceFilename:        info.SourceName,
		TotalOvertimeHours:    round2(totalOvertime),
		TotalOvertimeHHMMSS:   clock.FormatHHMMSS(totalOvertime),
		TotalOvertimeDDHHMMSS: clock.FormatDDHHMMSS(totalOvertime, clock.DefaultHoursPerDay),
		TotalHoursWorked:      round2(totalWorked),
		UniqueEmployees:       len(employees),
		TotalRecords:          len(records),
		AvgOvertimePerRecord:  round2(avg),
		AvgOvertimeHHMMSS:     clock.FormatHHMMSS(avg),
		AvgOvertimeDDHHMMSS:   clock.FormatDDHHMMSS(avg, clock.DefaultHoursPerDay),
	}, nil
}

// ExportSummary implements overtime.Service.
func (s *OvertimeServiceImpl) ExportSummary(ctx context.Context) (overtime.ExportFile, error) {
	records, _, err := s.snapshot(ctx)
	if err != nil {
		return overtime.ExportFile{}, err
	}

	employees := summarizeByEmployee(records)
	top := employees
	if topEmployeesExportCount < len(top) {
		top = top[:topEmployeesExportCount]
	}

	tables := []spreadsheet.Table{
		employeeTable("By Employee", employees),
		monthTableExport(summarizeByMonth(records)),
		dailyTable(summarizeDaily(records)),
		employeeTable("Top 20 Employees", top),
	}

	content, err := spreadsheet.WriteWorkbook(tables)
	if err != nil {
		return overtime.ExportFile{}, fmt.Errorf("failed to build summary workbook: %w", err)
	}

	return overtime.ExportFile{
		Filename:    "overtime_summary.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

// ResetDataset implements overtime.Service.
func (s *OvertimeServiceImpl) ResetDataset(ctx context.Context) error {
	s.store.Reset(ctx)
	return nil
}

func employeeTable(name string, summaries []overtime.EmployeeSummary) spreadsheet.Table {
	table := spreadsheet.Table{
		Sheet: name,
		Header: []string{
			"PIN CODE", "FULL NAME", "TOTAL OVERTIME HOURS", "AVG OVERTIME HOURS",
			"DAYS WORKED", "TOTAL HOURS WORKED", "FIRST DATE", "LAST DATE",
			"TOTAL OVERTIME HH:MM:SS", "TOTAL OVERTIME DD:HH:MM:SS",
		},
	}
	for _, s := range summaries {
		table.Rows = append(table.Rows, []any{
			s.PinCode, s.FullName, s.TotalOvertimeHours, s.AvgOvertimeHours,
			s.DaysWorked, s.TotalHoursWorked, s.FirstDate, s.LastDate,
			s.TotalOvertimeHHMMSS, s.TotalOvertimeDDHHMMSS,
		})
	}
	return table
}

func monthTableExport(summaries []overtime.MonthSummary) spreadsheet.Table {
	table := spreadsheet.Table{
		Sheet: "By Month",
		Header: []string{
			"MONTH", "TOTAL OVERTIME HOURS", "AVG OVERTIME HOURS", "TOTAL RECORDS",
			"TOTAL HOURS WORKED", "UNIQUE EMPLOYEES", "TOTAL OVERTIME HH:MM:SS",
		},
	}
	for _, s := range summaries {
		table.Rows = append(table.Rows, []any{
			s.Month, s.TotalOvertimeHours, s.AvgOvertimeHours, s.TotalRecords,
			s.TotalHoursWorked, s.UniqueEmployees, s.TotalOvertimeHHMMSS,
		})
	}
	return table
}

func dailyTable(totals []overtime.DailyTotal) spreadsheet.Table {
	table := spreadsheet.Table{
		Sheet:  "Daily Totals",
		Header: []string{"DATE", "TOTAL OVERTIME HOURS", "TOTAL HOURS WORKED", "EMPLOYEE COUNT"},
	}
	for _, t := range totals {
		table.Rows = append(table.Rows, []any{
			t.Date, t.TotalOvertimeHours, t.TotalHoursWorked, t.EmployeeCount,
		})
	}
	return table
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
