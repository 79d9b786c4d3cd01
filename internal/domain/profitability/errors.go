package profitability

import "errors"

var (
	ErrUpstreamData     = errors.New("upstream data error")
	ErrInvalidTimesheet = errors.New("invalid timesheet entry")
	ErrUnknownDimension = errors.New("unknown profitability dimension")
)
