package profitability

import "context"

// ProfitabilityRepository is the read side of the employee/project/client/timesheet/revenue
// tables. Rows are owned by the upload and CRUD layer; aggregation never writes.
type ProfitabilityRepository interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	ListClients(ctx context.Context) ([]Client, error)
	ListProjects(ctx context.Context) ([]Project, error)

	// ListTimesheetsByMonth returns every timesheet row of the month
	ListTimesheetsByMonth(ctx context.Context, month Month) ([]TimesheetEntry, error)

	// ListRevenueByMonth returns every revenue record of the month
	ListRevenueByMonth(ctx context.Context, month Month) ([]RevenueRecord, error)
}
