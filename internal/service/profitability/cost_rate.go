package profitability

import (
	"fmt"

	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// CostRate is an employee's fully-loaded cost. Values keep full precision; rounding
// happens only when shaping responses.
type CostRate struct {
	Monthly decimal.Decimal
	Hourly  decimal.Decimal
}

// CalculateCostRate derives monthly = (annual_ctc + overhead) / 12 and hourly = monthly / standard hours.
func CalculateCostRate(annualCTC decimal.Decimal, cfg settings.FinancialConfig) (CostRate, error) {
	if cfg.StandardMonthlyHours.LessThanOrEqual(decimal.Zero) {
		return CostRate{}, fmt.Errorf("%w: %s must be greater than zero", settings.ErrConfigurationInvalid, settings.KeyStandardMonthlyHours)
	}

	monthly := annualCTC.Add(cfg.OverheadCostPerYear).Div(monthsPerYear)
	return CostRate{
		Monthly: monthly,
		Hourly:  monthly.Div(cfg.StandardMonthlyHours),
	}, nil
}
