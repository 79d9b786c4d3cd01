package profitability

import (
	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/shopspring/decimal"
)

// AggregateRevenue sums invoice amounts per project for one month. Recognition is the same
// for every project type: what was invoiced in the month.
func AggregateRevenue(records []profitability.RevenueRecord, month profitability.Month) map[string]decimal.Decimal {
	return SumRevenueRange(records, month, month)
}

// SumRevenueRange sums invoice amounts per project over the inclusive month range.
func SumRevenueRange(records []profitability.RevenueRecord, from, to profitability.Month) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range records {
		if r.Month.Before(from) || r.Month.After(to) {
			continue
		}
		out[r.ProjectID] = out[r.ProjectID].Add(r.InvoiceAmount)
	}
	return out
}
