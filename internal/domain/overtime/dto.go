package overtime

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/validator"
)

// ========================================
// OVERTIME DTOs
// ========================================

// IngestRequest carries one uploaded workbook into the ingestion pipeline.
type IngestRequest struct {
	Filename string
	Reader   io.Reader `json:"-"`
}

var allowedExtensions = []string{".xlsx", ".xls"}

func (r *IngestRequest) Validate() error {
	if validator.IsEmpty(r.Filename) || r.Reader == nil {
		return ErrNoFileProvided
	}

	ext := strings.ToLower(filepath.Ext(r.Filename))
	if !validator.IsInSlice(ext, allowedExtensions) {
		return ErrInvalidFileType
	}
	return nil
}

// IngestResult reports what one upload produced.
type IngestResult struct {
	DatasetID     string   `json:"dataset_id"`
	Filename      string   `json:"filename"`
	Records       int      `json:"records"`
	SheetsLoaded  int      `json:"sheets_loaded"`
	SheetsSkipped []string `json:"sheets_skipped,omitempty"`
}

// EmployeeSummary is one by-employee aggregation row.
type EmployeeSummary struct {
	PinCode               int     `json:"pin_code"`
	FullName              string  `json:"full_name"`
	TotalOvertimeHours    float64 `json:"total_overtime_hours"`
	AvgOvertimeHours      float64 `json:"avg_overtime_hours"`
	DaysWorked            int     `json:"days_worked"`
	TotalHoursWorked      float64 `json:"total_hours_worked"`
	FirstDate             string  `json:"first_date"`
	LastDate              string  `json:"last_date"`
	TotalOvertimeHHMMSS   string  `json:"total_overtime_hhmmss"`
	TotalOvertimeDDHHMMSS string  `json:"total_overtime_ddhhmmss"`
	AvgOvertimeHHMMSS     string  `json:"avg_overtime_hhmmss"`
	AvgOvertimeDDHHMMSS   string  `json:"avg_overtime_ddhhmmss"`
}

// MonthSummary is one by-month aggregation row.
type MonthSummary struct {
	Month                 string  `json:"month"`
	TotalOvertimeHours    float64 `json:"total_overtime_hours"`
	AvgOvertimeHours      float64 `json:"avg_overtime_hours"`
	TotalRecords          int     `json:"total_records"`
	TotalHoursWorked      float64 `json:"total_hours_worked"`
	UniqueEmployees       int     `json:"unique_employees"`
	TotalOvertimeHHMMSS   string  `json:"total_overtime_hhmmss"`
	TotalOvertimeDDHHMMSS string  `json:"total_overtime_ddhhmmss"`
	AvgOvertimeHHMMSS     string  `json:"avg_overtime_hhmmss"`
	AvgOvertimeDDHHMMSS   string  `json:"avg_overtime_ddhhmmss"`
}

// DailyTotal is one by-date aggregation row.
type DailyTotal struct {
	Date               string  `json:"date"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
	TotalHoursWorked   float64 `json:"total_hours_worked"`
	EmployeeCount      int     `json:"employee_count"`
}

// RecordDetail is one normalized record shaped for API responses.
type RecordDetail struct {
	PinCode              int     `json:"pin_code"`
	FullName             string  `json:"full_name"`
	Date                 string  `json:"date"`
	Month                string  `json:"month"`
	ClockIn              string  `json:"ta_in,omitempty"`
	ClockOut             string  `json:"ta_out,omitempty"`
	Break                string  `json:"ta_break,omitempty"`
	HoursWorked          string  `json:"hours_worked,omitempty"`
	Target               string  `json:"target,omitempty"`
	HoursWorkedDecimal   float64 `json:"hours_worked_decimal"`
	TargetDecimal        float64 `json:"target_decimal"`
	OvertimeHoursDecimal float64 `json:"overtime_hours_decimal"`
	OvertimeHHMMSS       string  `json:"overtime_hhmmss"`
}

// DetailFilter selects records for the employee detail view. Both filters
// are optional and combine with AND semantics.
type DetailFilter struct {
	PinCode *int
	Name    *string
}

func (f *DetailFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.PinCode != nil && *f.PinCode < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "pin_code",
			Message: "pin_code must not be negative",
		})
	}

	if f.Name != nil && validator.IsEmpty(*f.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name filter must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OverallStats summarizes the whole dataset.
type OverallStats struct {
	DatasetID             string  `json:"dataset_id"`
	SourceFilename        string  `json:"source_filename"`
	TotalOvertimeHours    float64 `json:"total_overtime_hours"`
	TotalOvertimeHHMMSS   string  `json:"total_overtime_hhmmss"`
	TotalOvertimeDDHHMMSS string  `json:"total_overtime_ddhhmmss"`
	TotalHoursWorked      float64 `json:"total_hours_worked"`
	UniqueEmployees       int     `json:"unique_employees"`
	TotalRecords          int     `json:"total_records"`
	AvgOvertimePerRecord  float64 `json:"average_overtime_per_record"`
	AvgOvertimeHHMMSS     string  `json:"average_overtime_hhmmss"`
	AvgOvertimeDDHHMMSS   string  `json:"average_overtime_ddhhmmss"`
}

// ExportFile is a generated summary workbook ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
