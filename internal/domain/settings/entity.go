package settings

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Keys of the financial_config key/value table
const (
	KeyOverheadCostPerYear  = "overhead_cost_per_year"
	KeyStandardMonthlyHours = "standard_monthly_hours"
	KeyRBACOverrides        = "rbac_overrides"
)

// FinancialConfig holds the constants every cost rate is derived from. It is loaded
// per request and passed by value into the engine.
type FinancialConfig struct {
	OverheadCostPerYear  decimal.Decimal
	StandardMonthlyHours decimal.Decimal
}

func (c FinancialConfig) Validate() error {
	if c.StandardMonthlyHours.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %s must be greater than zero", ErrConfigurationInvalid, KeyStandardMonthlyHours)
	}
	if c.OverheadCostPerYear.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrConfigurationInvalid, KeyOverheadCostPerYear)
	}
	return nil
}

// ParseFinancialConfig builds a FinancialConfig from stored key/value pairs
func ParseFinancialConfig(values map[string]string) (FinancialConfig, error) {
	var cfg FinancialConfig

	overhead, ok := values[KeyOverheadCostPerYear]
	if !ok {
		return cfg, fmt.Errorf("%w: %s", ErrConfigurationMissing, KeyOverheadCostPerYear)
	}
	hours, ok := values[KeyStandardMonthlyHours]
	if !ok {
		return cfg, fmt.Errorf("%w: %s", ErrConfigurationMissing, KeyStandardMonthlyHours)
	}

	var err error
	if cfg.OverheadCostPerYear, err = decimal.NewFromString(overhead); err != nil {
		return cfg, fmt.Errorf("%w: %s is not a number", ErrConfigurationInvalid, KeyOverheadCostPerYear)
	}
	if cfg.StandardMonthlyHours, err = decimal.NewFromString(hours); err != nil {
		return cfg, fmt.Errorf("%w: %s is not a number", ErrConfigurationInvalid, KeyStandardMonthlyHours)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
