package profitability

import (
	"sort"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/shopspring/decimal"
)

const rankSize = 5

type ProjectResult struct {
	Project profitability.Project
	Result  profitability.Result
}

// ExecutiveRollup is the company-wide view of a month.
type ExecutiveRollup struct {
	Month              profitability.Month
	TotalRevenue       decimal.Decimal
	TotalCost          decimal.Decimal
	GrossMarginPercent decimal.Decimal
	UtilizationPercent decimal.Decimal
	Top                []ProjectResult
	Bottom             []ProjectResult
}

// ProjectResults computes every in-scope project, in input order.
func (e *Engine) ProjectResults() []ProjectResult {
	projects := e.facts.ProjectsInScope()
	out := make([]ProjectResult, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectResult{Project: p, Result: e.Project(p.ID)})
	}
	return out
}

// Executive rolls up the in-scope projects. Utilization is weighted over every timesheet
// row of the month.
func (e *Engine) Executive() ExecutiveRollup {
	results := e.ProjectResults()

	revenue, cost := decimal.Zero, decimal.Zero
	for _, r := range results {
		revenue = revenue.Add(r.Result.Revenue)
		cost = cost.Add(r.Result.Cost)
	}

	top, bottom := TopBottom(RankByMargin(results), rankSize)
	return ExecutiveRollup{
		Month:              e.facts.Month,
		TotalRevenue:       revenue,
		TotalCost:          cost,
		GrossMarginPercent: MarginPercent(revenue, cost),
		UtilizationPercent: e.facts.Hours.Company.Utilization(),
		Top:                top,
		Bottom:             bottom,
	}
}

// RankByMargin returns a sorted copy: margin desc, then revenue desc, then project code asc.
func RankByMargin(results []ProjectResult) []ProjectResult {
	ranked := make([]ProjectResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if c := a.Result.MarginPercent.Cmp(b.Result.MarginPercent); c != 0 {
			return c > 0
		}
		if c := a.Result.Revenue.Cmp(b.Result.Revenue); c != 0 {
			return c > 0
		}
		return a.Project.Code < b.Project.Code
	})
	return ranked
}

// TopBottom takes the first n of a ranking and the last n reversed, worst first. The two
// are disjoint once the ranking holds at least 2n entries.
func TopBottom(ranked []ProjectResult, n int) (top, bottom []ProjectResult) {
	k := min(n, len(ranked))
	top = append([]ProjectResult{}, ranked[:k]...)

	bottom = make([]ProjectResult, 0, k)
	for i := len(ranked) - 1; i >= len(ranked)-k; i-- {
		bottom = append(bottom, ranked[i])
	}
	return top, bottom
}
