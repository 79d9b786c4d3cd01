package profitability

import (
	"fmt"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// Facts is the immutable, indexed form of one month's snapshot. Everything the engine
// reports is derived from it; nothing mutates it after NewFacts returns.
type Facts struct {
	Month  profitability.Month
	Config settings.FinancialConfig

	Departments []profitability.Department
	Employees   []profitability.Employee
	Clients     []profitability.Client
	Projects    []profitability.Project

	Hours   *TimesheetSummary
	Revenue map[string]decimal.Decimal

	// SkippedRows counts timesheet rows naming an unknown employee or project
	SkippedRows int

	employeeByID   map[string]profitability.Employee
	projectByID    map[string]profitability.Project
	departmentByID map[string]profitability.Department
	clientByID     map[string]profitability.Client

	rates       map[string]CostRate
	allocations map[string]map[string]decimal.Decimal // employee -> project -> cost
}

// NewFacts validates the config, derives every employee's cost rate and allocates cost to
// projects. Configuration problems come back as settings errors, bad rows as ErrUpstreamData.
func NewFacts(cfg settings.FinancialConfig, snapshot profitability.Snapshot) (*Facts, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Facts{
		Month:          snapshot.Month,
		Config:         cfg,
		Departments:    snapshot.Departments,
		Employees:      snapshot.Employees,
		Clients:        snapshot.Clients,
		Projects:       snapshot.Projects,
		employeeByID:   make(map[string]profitability.Employee, len(snapshot.Employees)),
		projectByID:    make(map[string]profitability.Project, len(snapshot.Projects)),
		departmentByID: make(map[string]profitability.Department, len(snapshot.Departments)),
		clientByID:     make(map[string]profitability.Client, len(snapshot.Clients)),
		rates:          make(map[string]CostRate, len(snapshot.Employees)),
		allocations:    make(map[string]map[string]decimal.Decimal),
	}
	for _, d := range snapshot.Departments {
		f.departmentByID[d.ID] = d
	}
	for _, c := range snapshot.Clients {
		f.clientByID[c.ID] = c
	}
	for _, p := range snapshot.Projects {
		f.projectByID[p.ID] = p
	}
	for _, e := range snapshot.Employees {
		if e.AnnualCTC.IsNegative() {
			return nil, fmt.Errorf("%w: employee %s has a negative annual ctc", profitability.ErrUpstreamData, e.ID)
		}
		rate, err := CalculateCostRate(e.AnnualCTC, cfg)
		if err != nil {
			return nil, err
		}
		f.employeeByID[e.ID] = e
		f.rates[e.ID] = rate
	}

	rows := make([]profitability.TimesheetEntry, 0, len(snapshot.Timesheets))
	for _, row := range snapshot.Timesheets {
		_, knownEmployee := f.employeeByID[row.EmployeeID]
		_, knownProject := f.projectByID[row.ProjectID]
		if !knownEmployee || !knownProject {
			f.SkippedRows++
			continue
		}
		rows = append(rows, row)
	}

	hours, err := AggregateTimesheets(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", profitability.ErrUpstreamData, err)
	}
	f.Hours = hours
	f.Revenue = AggregateRevenue(snapshot.Revenue, snapshot.Month)

	for employeeID := range hours.ByEmployeeProject {
		f.allocations[employeeID] = AllocateCost(f.rates[employeeID], cfg.StandardMonthlyHours, hours.HoursByProject(employeeID))
	}

	return f, nil
}

func (f *Facts) Employee(id string) (profitability.Employee, bool) {
	e, ok := f.employeeByID[id]
	return e, ok
}

func (f *Facts) Project(id string) (profitability.Project, bool) {
	p, ok := f.projectByID[id]
	return p, ok
}

func (f *Facts) Department(id string) (profitability.Department, bool) {
	d, ok := f.departmentByID[id]
	return d, ok
}

func (f *Facts) Client(id string) (profitability.Client, bool) {
	c, ok := f.clientByID[id]
	return c, ok
}

func (f *Facts) CostRate(employeeID string) (CostRate, bool) {
	r, ok := f.rates[employeeID]
	return r, ok
}

// AllocatedCost is the cost of employeeID charged to projectID this month.
func (f *Facts) AllocatedCost(employeeID, projectID string) decimal.Decimal {
	return f.allocations[employeeID][projectID]
}

// InScope reports whether a project belongs to the month's rollups: not cancelled, and
// either running during the month or carrying hours or revenue in it.
func (f *Facts) InScope(p profitability.Project) bool {
	if p.Status == profitability.ProjectStatusCancelled {
		return false
	}
	if p.InMonth(f.Month) {
		return true
	}
	if _, ok := f.Revenue[p.ID]; ok {
		return true
	}
	_, ok := f.Hours.ByProject[p.ID]
	return ok
}

// ProjectsInScope returns the in-scope projects in input order.
func (f *Facts) ProjectsInScope() []profitability.Project {
	out := make([]profitability.Project, 0, len(f.Projects))
	for _, p := range f.Projects {
		if f.InScope(p) {
			out = append(out, p)
		}
	}
	return out
}

// EmployeesOf returns the department's employees that had joined by the end of the month.
func (f *Facts) EmployeesOf(departmentID string) []profitability.Employee {
	var out []profitability.Employee
	for _, e := range f.Employees {
		if e.DepartmentID == departmentID && f.onRoll(e) {
			out = append(out, e)
		}
	}
	return out
}

// EmployeesOnRoll returns employees that had joined by the end of the month.
func (f *Facts) EmployeesOnRoll() []profitability.Employee {
	out := make([]profitability.Employee, 0, len(f.Employees))
	for _, e := range f.Employees {
		if f.onRoll(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f *Facts) onRoll(e profitability.Employee) bool {
	return e.JoiningDate.IsZero() || e.JoiningDate.Before(f.Month.End()) || f.Hours.HasTime(e.ID)
}
