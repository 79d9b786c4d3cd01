package profitability

import (
	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/shopspring/decimal"
)

var (
	hundred         = decimal.NewFromInt(100)
	negativeHundred = decimal.NewFromInt(-100)
)

// MarginPercent is (revenue - cost) / revenue * 100 rounded to 2 places. With no revenue
// the margin is -100 when there is cost and 0 when there is none.
func MarginPercent(revenue, cost decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		if cost.GreaterThan(decimal.Zero) {
			return negativeHundred
		}
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(revenue).Mul(hundred).Round(2)
}

// Percent is part / whole * 100 rounded to 2 places, 0 when whole is 0.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func NewResult(entityID string, revenue, cost decimal.Decimal) profitability.Result {
	return profitability.Result{
		EntityID:      entityID,
		Revenue:       revenue,
		Cost:          cost,
		Profit:        revenue.Sub(cost),
		MarginPercent: MarginPercent(revenue, cost),
	}
}

// SumResults folds results into one, recomputing margin from the totals.
func SumResults(entityID string, results ...profitability.Result) profitability.Result {
	revenue, cost := decimal.Zero, decimal.Zero
	for _, r := range results {
		revenue = revenue.Add(r.Revenue)
		cost = cost.Add(r.Cost)
	}
	return NewResult(entityID, revenue, cost)
}
