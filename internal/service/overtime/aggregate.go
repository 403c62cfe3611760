package overtime

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/overtime-analyzer/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/clock"
)

const dateLayout = "2006-01-02"

type employeeKey struct {
	pinCode  int
	fullName string
}

type employeeAccumulator struct {
	key           employeeKey
	totalOvertime float64
	totalWorked   float64
	count         int
	firstDate     time.Time
	lastDate      time.Time
}

// summarizeByEmployee groups records by (pin, name) and sorts the groups by
// total overtime descending. The sort is stable; ties keep the order in
// which the groups were first encountered.
func summarizeByEmployee(records []overtime.Record) []overtime.EmployeeSummary {
	var order []employeeKey
	groups := make(map[employeeKey]*employeeAccumulator)

	for _, rec := range records {
		key := employeeKey{pinCode: rec.PinCode, fullName: rec.FullName}
		acc, ok := groups[key]
		if !ok {
			acc = &employeeAccumulator{key: key, firstDate: rec.Date, lastDate: rec.Date}
			groups[key] = acc
			order = append(order, key)
		}
		acc.totalOvertime += rec.OvertimeHoursDecimal
		acc.totalWorked += rec.HoursWorkedDecimal
		acc.count++
		if rec.Date.Before(acc.firstDate) {
			acc.firstDate = rec.Date
		}
		if rec.Date.After(acc.lastDate) {
			acc.lastDate = rec.Date
		}
	}

	summaries := make([]overtime.EmployeeSummary, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		avg := acc.totalOvertime / float64(acc.count)
		summaries = append(summaries, overtime.EmployeeSummary{
			PinCode:               acc.key.pinCode,
			FullName:              acc.key.fullName,
			TotalOvertimeHours:    acc.totalOvertime,
			AvgOvertimeHours:      avg,
			DaysWorked:            acc.count,
			TotalHoursWorked:      acc.totalWorked,
			FirstDate:             acc.firstDate.Format(dateLayout),
			LastDate:              acc.lastDate.Format(dateLayout),
			TotalOvertimeHHMMSS:   clock.FormatHHMMSS(acc.totalOvertime),
			TotalOvertimeDDHHMMSS: clock.FormatDDHHMMSS(acc.totalOvertime, clock.DefaultHoursPerDay),
			AvgOvertimeHHMMSS:     clock.FormatHHMMSS(avg),
			AvgOvertimeDDHHMMSS:   clock.FormatDDHHMMSS(avg, clock.DefaultHoursPerDay),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalOvertimeHours > summaries[j].TotalOvertimeHours
	})
	return summaries
}

type monthAccumulator struct {
	month         string
	totalOvertime float64
	totalWorked   float64
	count         int
	employees     map[int]struct{}
}

// summarizeByMonth groups records by sheet month label, in the order the
// labels first appear in the dataset.
func summarizeByMonth(records []overtime.Record) []overtime.MonthSummary {
	var order []string
	groups := make(map[string]*monthAccumulator)

	for _, rec := range records {
		acc, ok := groups[rec.Month]
		if !ok {
			acc = &monthAccumulator{month: rec.Month, employees: make(map[int]struct{})}
			groups[rec.Month] = acc
			order = append(order, rec.Month)
		}
		acc.totalOvertime += rec.OvertimeHoursDecimal
		acc.totalWorked += rec.HoursWorkedDecimal
		acc.count++
		acc.employees[rec.PinCode] = struct{}{}
	}

	summaries := make([]overtime.MonthSummary, 0, len(order))
	for _, month := range order {
		acc := groups[month]
		avg := acc.totalOvertime / float64(acc.count)
		summaries = append(summaries, overtime.MonthSummary{
			Month:                 acc.month,
			TotalOvertimeHours:    acc.totalOvertime,
			AvgOvertimeHours:      avg,
			TotalRecords:          acc.count,
			TotalHoursWorked:      acc.totalWorked,
			UniqueEmployees:       len(acc.employees),
			TotalOvertimeHHMMSS:   clock.FormatHHMMSS(acc.totalOvertime),
			TotalOvertimeDDHHMMSS: clock.FormatDDHHMMSS(acc.totalOvertime, clock.DefaultHoursPerDay),
			AvgOvertimeHHMMSS:     clock.FormatHHMMSS(avg),
			AvgOvertimeDDHHMMSS:   clock.FormatDDHHMMSS(avg, clock.DefaultHoursPerDay),
		})
	}
	return summaries
}

type dailyAccumulator struct {
	date          time.Time
	totalOvertime float64
	totalWorked   float64
	employees     map[int]struct{}
}

// summarizeDaily groups records by date and sorts ascending.
func summarizeDaily(records []overtime.Record) []overtime.DailyTotal {
	groups := make(map[time.Time]*dailyAccumulator)

	for _, rec := range records {
		acc, ok := groups[rec.Date]
		if !ok {
			acc = &dailyAccumulator{date: rec.Date, employees: make(map[int]struct{})}
			groups[rec.Date] = acc
		}
		acc.totalOvertime += rec.OvertimeHoursDecimal
		acc.totalWorked += rec.HoursWorkedDecimal
		acc.employees[rec.PinCode] = struct{}{}
	}

	accs := make([]*dailyAccumulator, 0, len(groups))
	for _, acc := range groups {
		accs = append(accs, acc)
	}
	sort.Slice(accs, func(i, j int) bool {
		return accs[i].date.Before(accs[j].date)
	})

	totals := make([]overtime.DailyTotal, 0, len(accs))
	for _, acc := range accs {
		totals = append(totals, overtime.DailyTotal{
			Date:               acc.date.Format(dateLayout),
			TotalOvertimeHours: acc.totalOvertime,
			TotalHoursWorked:   acc.totalWorked,
			EmployeeCount:      len(acc.employees),
		})
	}
	return totals
}

// filterDetails selects records matching the filter, sorted by date
// ascending. Pin and name filters combine with AND semantics.
func filterDetails(records []overtime.Record, filter overtime.DetailFilter) []overtime.RecordDetail {
	var details []overtime.RecordDetail
	for _, rec := range records {
		if filter.PinCode != nil && rec.PinCode != *filter.PinCode {
			continue
		}
		if filter.Name != nil &&
			!strings.Contains(strings.ToLower(rec.FullName), strings.ToLower(*filter.Name)) {
			continue
		}
		details = append(details, overtime.RecordDetail{
			PinCode:              rec.PinCode,
			FullName:             rec.FullName,
			Date:                 rec.Date.Format(dateLayout),
			Month:                rec.Month,
			ClockIn:              rec.ClockIn,
			ClockOut:             rec.ClockOut,
			Break:                rec.Break,
			HoursWorked:          rec.HoursWorked,
			Target:               rec.Target,
			HoursWorkedDecimal:   rec.HoursWorkedDecimal,
			TargetDecimal:        rec.TargetDecimal,
			OvertimeHoursDecimal: rec.OvertimeHoursDecimal,
			OvertimeHHMMSS:       clock.FormatHHMMSS(rec.OvertimeHoursDecimal),
		})
	}
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Date < details[j].Date
	})
	return details
}
