package settings

import (
	"errors"

	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ConfigResponse struct {
	OverheadCostPerYear  *float64 `json:"overhead_cost_per_year"`
	StandardMonthlyHours *float64 `json:"standard_monthly_hours"`
	RBACOverrides        string   `json:"rbac_overrides"`
}

type RBACConfigResponse struct {
	RBACOverrides string `json:"rbac_overrides"`
}

// UpdateConfigRequest carries the keys to change; nil fields are left untouched.
// RBACOverrides is the JSON-encoded matrix as a string, "" clears the overrides.
type UpdateConfigRequest struct {
	OverheadCostPerYear  *decimal.Decimal `json:"overhead_cost_per_year,omitempty"`
	StandardMonthlyHours *decimal.Decimal `json:"standard_monthly_hours,omitempty"`
	RBACOverrides        *string          `json:"rbac_overrides,omitempty"`
}

func (r *UpdateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OverheadCostPerYear == nil && r.StandardMonthlyHours == nil && r.RBACOverrides == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of overhead_cost_per_year, standard_monthly_hours or rbac_overrides is required",
		})
		return errs
	}

	if r.OverheadCostPerYear != nil && r.OverheadCostPerYear.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   KeyOverheadCostPerYear,
			Message: "overhead_cost_per_year must not be negative",
		})
	}
	if r.StandardMonthlyHours != nil && r.StandardMonthlyHours.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, validator.ValidationError{
			Field:   KeyStandardMonthlyHours,
			Message: "standard_monthly_hours must be greater than zero",
		})
	}
	if r.RBACOverrides != nil {
		if _, err := rbac.ParseOverrides(*r.RBACOverrides); err != nil {
			msg := err.Error()
			if errors.Is(err, rbac.ErrInvalidRBACOverrides) {
				msg = "rbac_overrides must be a JSON object mapping known roles to known scopes: " + msg
			}
			errs = append(errs, validator.ValidationError{
				Field:   KeyRBACOverrides,
				Message: msg,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Values returns the provided fields as stored key/value pairs
func (r *UpdateConfigRequest) Values() map[string]string {
	values := make(map[string]string, 3)
	if r.OverheadCostPerYear != nil {
		values[KeyOverheadCostPerYear] = r.OverheadCostPerYear.String()
	}
	if r.StandardMonthlyHours != nil {
		values[KeyStandardMonthlyHours] = r.StandardMonthlyHours.String()
	}
	if r.RBACOverrides != nil {
		values[KeyRBACOverrides] = *r.RBACOverrides
	}
	return values
}
