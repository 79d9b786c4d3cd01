package profitability

import (
	"fmt"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/shopspring/decimal"
)

type Hours struct {
	Billable    decimal.Decimal
	NonBillable decimal.Decimal
}

func (h Hours) Total() decimal.Decimal {
	return h.Billable.Add(h.NonBillable)
}

func (h Hours) Add(other Hours) Hours {
	return Hours{
		Billable:    h.Billable.Add(other.Billable),
		NonBillable: h.NonBillable.Add(other.NonBillable),
	}
}

// Utilization is billable / (billable + non-billable) * 100, 0 with no hours.
func (h Hours) Utilization() decimal.Decimal {
	return Percent(h.Billable, h.Total())
}

// TimesheetSummary indexes a month of timesheet rows.
type TimesheetSummary struct {
	Company    Hours
	ByEmployee map[string]Hours
	ByProject  map[string]Hours

	// employee -> project -> hours
	ByEmployeeProject map[string]map[string]Hours
}

// AggregateTimesheets sums rows per employee and per project. Repeated keys are summed.
// Negative hours are rejected.
func AggregateTimesheets(rows []profitability.TimesheetEntry) (*TimesheetSummary, error) {
	s := &TimesheetSummary{
		ByEmployee:        make(map[string]Hours),
		ByProject:         make(map[string]Hours),
		ByEmployeeProject: make(map[string]map[string]Hours),
	}

	for _, row := range rows {
		if row.BillableHours.IsNegative() || row.NonBillableHours.IsNegative() {
			return nil, fmt.Errorf("%w: employee %s project %s has negative hours", profitability.ErrInvalidTimesheet, row.EmployeeID, row.ProjectID)
		}
		h := Hours{Billable: row.BillableHours, NonBillable: row.NonBillableHours}

		s.Company = s.Company.Add(h)
		s.ByEmployee[row.EmployeeID] = s.ByEmployee[row.EmployeeID].Add(h)
		s.ByProject[row.ProjectID] = s.ByProject[row.ProjectID].Add(h)

		perProject, ok := s.ByEmployeeProject[row.EmployeeID]
		if !ok {
			perProject = make(map[string]Hours)
			s.ByEmployeeProject[row.EmployeeID] = perProject
		}
		perProject[row.ProjectID] = perProject[row.ProjectID].Add(h)
	}

	return s, nil
}

// HasTime reports whether the employee logged a positive number of hours in the month.
// Rows of zero hours do not count.
func (s *TimesheetSummary) HasTime(employeeID string) bool {
	return s.ByEmployee[employeeID].Total().IsPositive()
}

// HoursByProject returns the employee's total hours per project.
func (s *TimesheetSummary) HoursByProject(employeeID string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.ByEmployeeProject[employeeID]))
	for projectID, h := range s.ByEmployeeProject[employeeID] {
		out[projectID] = h.Total()
	}
	return out
}

// AllocateCost spreads an employee's monthly cost over projects in proportion to hours:
// monthly * hours_on_project / max(total_logged, standard_hours). Below standard hours this
// is hourly_rate * hours_on_project and the idle remainder stays unallocated; above it the
// whole monthly cost is split so the allocations never exceed it.
func AllocateCost(rate CostRate, standardHours decimal.Decimal, hoursByProject map[string]decimal.Decimal) map[string]decimal.Decimal {
	total := decimal.Zero
	for _, h := range hoursByProject {
		total = total.Add(h)
	}

	allocations := make(map[string]decimal.Decimal, len(hoursByProject))
	if total.IsZero() {
		return allocations
	}

	denominator := decimal.Max(total, standardHours)
	for projectID, h := range hoursByProject {
		allocations[projectID] = rate.Monthly.Mul(h).Div(denominator)
	}
	return allocations
}
