package profitability

import "context"

// DashboardService defines the dashboard operations. The caller is read from the
// request context (rbac.PrincipalFromContext) for row-level scoping; feature-level
// scope checks happen before these methods are reached.
type DashboardService interface {
	// GetExecutive returns the company-wide rollup with top/bottom projects by margin
	GetExecutive(ctx context.Context, month Month) (*ExecutiveDashboardResponse, error)

	// GetProjects returns per-project profitability plus a summary of the visible rows
	GetProjects(ctx context.Context, month Month) (*ProjectDashboardResponse, error)

	// GetEmployees returns per-employee revenue contribution, cost and margin
	GetEmployees(ctx context.Context, month Month) (*EmployeeDashboardResponse, error)

	// GetDepartments returns per-department rollups
	GetDepartments(ctx context.Context, month Month) (*DepartmentDashboardResponse, error)

	// GetClients returns per-client rollups
	GetClients(ctx context.Context, month Month) (*ClientDashboardResponse, error)

	// RefreshFacts re-reads the month's source rows and replaces the cached copy
	RefreshFacts(ctx context.Context, month Month) error
}
