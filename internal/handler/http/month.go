package http

import (
	"net/http"
	"time"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/profitpulse/profitpulse-api/internal/pkg/validator"
)

// parseMonthQuery reads the reporting month from either ?month=YYYY-MM or
// ?month=MM&year=YYYY. No parameters means the current month.
func parseMonthQuery(r *http.Request, now time.Time) (profitability.Month, error) {
	query := r.URL.Query()
	month := query.Get("month")
	year := query.Get("year")

	if month == "" && year == "" {
		return profitability.MonthOf(now), nil
	}

	var errs validator.ValidationErrors

	if year == "" {
		if !validator.IsValidYearMonth(month) {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format, or MM together with year",
			})
			return profitability.Month{}, errs
		}
		return profitability.ParseMonth(month)
	}

	y, ok := validator.ParseYear(year)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four digit year",
		})
	}

	m := int(now.Month())
	if month != "" {
		if m, ok = validator.ParseMonthNumber(month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		}
	}

	if len(errs) > 0 {
		return profitability.Month{}, errs
	}
	return profitability.NewMonth(y, time.Month(m)), nil
}
