package overtime

import (
	"context"
)

// Service defines the overtime analysis operations exposed to transport
// adapters.
type Service interface {
	// IngestWorkbook decodes and normalizes an uploaded workbook, replacing
	// the current dataset on success. A failed ingestion leaves any prior
	// dataset untouched.
	IngestWorkbook(ctx context.Context, req IngestRequest) (IngestResult, error)

	// SummaryByEmployee aggregates per employee, sorted by total overtime
	// descending.
	SummaryByEmployee(ctx context.Context) ([]EmployeeSummary, error)

	// SummaryByMonth aggregates per sheet month label in encounter order.
	SummaryByMonth(ctx context.Context) ([]MonthSummary, error)

	// DailyTotals aggregates per date, sorted ascending.
	DailyTotals(ctx context.Context) ([]DailyTotal, error)

	// TopOvertimeEmployees returns the first n by-employee rows. An n larger
	// than the number of employees returns all of them.
	TopOvertimeEmployees(ctx context.Context, n int) ([]EmployeeSummary, error)

	// EmployeeDetails lists matching records sorted by date ascending.
	EmployeeDetails(ctx context.Context, filter DetailFilter) ([]RecordDetail, error)

	// OverallStats summarizes the whole dataset.
	OverallStats(ctx context.Context) (OverallStats, error)

	// ExportSummary renders the summary views as an xlsx workbook.
	ExportSummary(ctx context.Context) (ExportFile, error)

	// ResetDataset discards the current dataset.
	ResetDataset(ctx context.Context) error
}
