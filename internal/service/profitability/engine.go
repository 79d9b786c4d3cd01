package profitability

import (
	"fmt"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/shopspring/decimal"
)

// Engine computes profitability results over one month of facts. It holds no state of its
// own, so repeated calls return identical results.
type Engine struct {
	facts *Facts
}

func NewEngine(facts *Facts) *Engine {
	return &Engine{facts: facts}
}

func (e *Engine) Facts() *Facts {
	return e.facts
}

// Compute returns the result for one entity. Unknown entities and entities without data
// yield a zero result rather than an error.
func (e *Engine) Compute(dimension profitability.Dimension, entityID string) (profitability.Result, error) {
	switch dimension {
	case profitability.DimensionProject:
		return e.Project(entityID), nil
	case profitability.DimensionEmployee:
		return e.Employee(entityID), nil
	case profitability.DimensionDepartment:
		return e.Department(entityID), nil
	case profitability.DimensionClient:
		return e.Client(entityID), nil
	default:
		return profitability.Result{}, fmt.Errorf("%w: %q", profitability.ErrUnknownDimension, dimension)
	}
}

// ComputeAll returns a result for every entity of the dimension, in input order.
func (e *Engine) ComputeAll(dimension profitability.Dimension) ([]profitability.Result, error) {
	var ids []string
	switch dimension {
	case profitability.DimensionProject:
		for _, p := range e.facts.Projects {
			ids = append(ids, p.ID)
		}
	case profitability.DimensionEmployee:
		for _, emp := range e.facts.Employees {
			ids = append(ids, emp.ID)
		}
	case profitability.DimensionDepartment:
		for _, d := range e.facts.Departments {
			ids = append(ids, d.ID)
		}
	case profitability.DimensionClient:
		for _, c := range e.facts.Clients {
			ids = append(ids, c.ID)
		}
	default:
		return nil, fmt.Errorf("%w: %q", profitability.ErrUnknownDimension, dimension)
	}

	results := make([]profitability.Result, 0, len(ids))
	for _, id := range ids {
		r, err := e.Compute(dimension, id)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Project: invoiced revenue against the cost allocated by every employee who logged time on it.
func (e *Engine) Project(projectID string) profitability.Result {
	cost := decimal.Zero
	for _, emp := range e.facts.Employees {
		cost = cost.Add(e.facts.AllocatedCost(emp.ID, projectID))
	}
	return NewResult(projectID, e.facts.Revenue[projectID], cost)
}

// Employee: the full monthly cost rate when the employee logged time, against their
// hours-weighted share of each in-scope project's revenue.
func (e *Engine) Employee(employeeID string) profitability.Result {
	if !e.facts.Hours.HasTime(employeeID) {
		return NewResult(employeeID, decimal.Zero, decimal.Zero)
	}
	rate, ok := e.facts.CostRate(employeeID)
	if !ok {
		return NewResult(employeeID, decimal.Zero, decimal.Zero)
	}

	revenue := decimal.Zero
	for projectID, h := range e.facts.Hours.ByEmployeeProject[employeeID] {
		if p, ok := e.facts.Project(projectID); !ok || !e.facts.InScope(p) {
			continue
		}
		projectHours := e.facts.Hours.ByProject[projectID].Total()
		if projectHours.IsZero() {
			continue
		}
		revenue = revenue.Add(e.facts.Revenue[projectID].Mul(h.Total()).Div(projectHours))
	}

	return NewResult(employeeID, revenue, rate.Monthly)
}

// Department sums the results of its employees.
func (e *Engine) Department(departmentID string) profitability.Result {
	var results []profitability.Result
	for _, emp := range e.facts.EmployeesOf(departmentID) {
		results = append(results, e.Employee(emp.ID))
	}
	return SumResults(departmentID, results...)
}

// Client sums the results of its in-scope projects.
func (e *Engine) Client(clientID string) profitability.Result {
	var results []profitability.Result
	for _, p := range e.ClientProjects(clientID) {
		results = append(results, e.Project(p.ID))
	}
	return SumResults(clientID, results...)
}

func (e *Engine) ClientProjects(clientID string) []profitability.Project {
	var out []profitability.Project
	for _, p := range e.facts.ProjectsInScope() {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// DepartmentHours sums the hours of the department's employees.
func (e *Engine) DepartmentHours(departmentID string) Hours {
	var h Hours
	for _, emp := range e.facts.EmployeesOf(departmentID) {
		h = h.Add(e.facts.Hours.ByEmployee[emp.ID])
	}
	return h
}
