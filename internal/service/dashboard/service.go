package dashboard

import (
	"context"
	"time"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/profitpulse/profitpulse-api/internal/pkg/cache"
	"github.com/profitpulse/profitpulse-api/internal/pkg/metrics"
	engine "github.com/profitpulse/profitpulse-api/internal/service/profitability"
	scoping "github.com/profitpulse/profitpulse-api/internal/service/rbac"
	"github.com/shopspring/decimal"
)

// ConfigSource yields the financial constants for a computation
type ConfigSource interface {
	GetFinancialConfig(ctx context.Context) (settings.FinancialConfig, error)
}

type DashboardServiceImpl struct {
	repo     profitability.ProfitabilityRepository
	config   ConfigSource
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewDashboardService(repo profitability.ProfitabilityRepository, config ConfigSource, c cache.Cache, cacheTTL time.Duration) profitability.DashboardService {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &DashboardServiceImpl{
		repo:     repo,
		config:   config,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func principal(ctx context.Context) (rbac.Principal, error) {
	p, ok := rbac.PrincipalFromContext(ctx)
	if !ok {
		return rbac.Principal{}, rbac.ErrPrincipalMissing
	}
	return p, nil
}

// round2 converts a money or percent value for the JSON payload
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// GetExecutive implements profitability.DashboardService.
func (s *DashboardServiceImpl) GetExecutive(ctx context.Context, month profitability.Month) (resp *profitability.ExecutiveDashboardResponse, err error) {
	defer func(start time.Time) { metrics.ObserveDashboard("executive", start, err) }(time.Now())

	if _, err = principal(ctx); err != nil {
		return nil, err
	}
	e, err := s.loadEngine(ctx, month)
	if err != nil {
		return nil, err
	}

	rollup := e.Executive()
	return &profitability.ExecutiveDashboardResponse{
		Month:              month.String(),
		TotalRevenue:       round2(rollup.TotalRevenue),
		TotalCost:          round2(rollup.TotalCost),
		GrossMarginPercent: round2(rollup.GrossMarginPercent),
		UtilizationPercent: round2(rollup.UtilizationPercent),
		Top5Projects:       toMarginItems(rollup.Top),
		Bottom5Projects:    toMarginItems(rollup.Bottom),
	}, nil
}

func toMarginItems(results []engine.ProjectResult) []profitability.ProjectMarginItem {
	items := make([]profitability.ProjectMarginItem, 0, len(results))
	for _, r := range results {
		items = append(items, profitability.ProjectMarginItem{
			ProjectCode:   r.Project.Code,
			Revenue:       round2(r.Result.Revenue),
			MarginPercent: round2(r.Result.MarginPercent),
		})
	}
	return items
}

// GetProjects implements profitability.DashboardService.
func (s *DashboardServiceImpl) GetProjects(ctx context.Context, month profitability.Month) (resp *profitability.ProjectDashboardResponse, err error) {
	defer func(start time.Time) { metrics.ObserveDashboard("project", start, err) }(time.Now())

	caller, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.loadEngine(ctx, month)
	if err != nil {
		return nil, err
	}
	facts := e.Facts()

	rows := make([]profitability.ProjectDashboardRow, 0)
	totalRevenue, totalCost := decimal.Zero, decimal.Zero
	for _, r := range e.ProjectResults() {
		if !scoping.CanSeeProject(caller, r.Project) {
			continue
		}
		client, _ := facts.Client(r.Project.ClientID)
		rows = append(rows, profitability.ProjectDashboardRow{
			ID:            r.Project.ID,
			Name:          r.Project.Name,
			ProjectCode:   r.Project.Code,
			ClientName:    client.Name,
			ProjectType:   string(r.Project.Type),
			Revenue:       round2(r.Result.Revenue),
			Cost:          round2(r.Result.Cost),
			MarginPercent: round2(r.Result.MarginPercent),
		})
		totalRevenue = totalRevenue.Add(r.Result.Revenue)
		totalCost = totalCost.Add(r.Result.Cost)
	}

	return &profitability.ProjectDashboardResponse{
		Month:    month.String(),
		Projects: rows,
		Summary: profitability.ProjectSummary{
			TotalRevenue:  round2(totalRevenue),
			TotalCost:     round2(totalCost),
			TotalProfit:   round2(totalRevenue.Sub(totalCost)),
			MarginPercent: round2(engine.MarginPercent(totalRevenue, totalCost)),
			ProjectCount:  len(rows),
		},
	}, nil
}

// GetEmployees implements profitability.DashboardService.
func (s *DashboardServiceImpl) GetEmployees(ctx context.Context, month profitability.Month) (resp *profitability.EmployeeDashboardResponse, err error) {
	defer func(start time.Time) { metrics.ObserveDashboard("employee", start, err) }(time.Now())

	caller, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.loadEngine(ctx, month)
	if err != nil {
		return nil, err
	}
	facts := e.Facts()

	employees := scoping.FilterEmployees(caller, facts.EmployeesOnRoll())
	rows := make([]profitability.EmployeeDashboardRow, 0, len(employees))
	for _, emp := range employees {
		department, _ := facts.Department(emp.DepartmentID)
		result, err := e.Compute(profitability.DimensionEmployee, emp.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, profitability.EmployeeDashboardRow{
			ID:                  emp.ID,
			Name:                emp.Name,
			Department:          department.Name,
			Designation:         emp.Designation,
			BillablePercent:     round2(facts.Hours.ByEmployee[emp.ID].Utilization()),
			RevenueContribution: round2(result.Revenue),
			Cost:                round2(result.Cost),
			Profit:              round2(result.Profit),
			MarginPercent:       round2(result.MarginPercent),
		})
	}

	return &profitability.EmployeeDashboardResponse{
		Month:     month.String(),
		Employees: rows,
	}, nil
}

// GetDepartments implements profitability.DashboardService.
func (s *DashboardServiceImpl) GetDepartments(ctx context.Context, month profitability.Month) (resp *profitability.DepartmentDashboardResponse, err error) {
	defer func(start time.Time) { metrics.ObserveDashboard("department", start, err) }(time.Now())

	caller, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.loadEngine(ctx, month)
	if err != nil {
		return nil, err
	}
	facts := e.Facts()

	results, err := resultsByID(e, profitability.DimensionDepartment)
	if err != nil {
		return nil, err
	}

	departments := scoping.FilterDepartments(caller, facts.Departments)
	rows := make([]profitability.DepartmentDashboardRow, 0, len(departments))
	for _, d := range departments {
		result := results[d.ID]
		rows = append(rows, profitability.DepartmentDashboardRow{
			ID:                 d.ID,
			Name:               d.Name,
			EmployeeCount:      len(facts.EmployeesOf(d.ID)),
			UtilizationPercent: round2(e.DepartmentHours(d.ID).Utilization()),
			Revenue:            round2(result.Revenue),
			Cost:               round2(result.Cost),
			MarginPercent:      round2(result.MarginPercent),
		})
	}

	return &profitability.DepartmentDashboardResponse{
		Month:       month.String(),
		Departments: rows,
	}, nil
}

// GetClients implements profitability.DashboardService.
func (s *DashboardServiceImpl) GetClients(ctx context.Context, month profitability.Month) (resp *profitability.ClientDashboardResponse, err error) {
	defer func(start time.Time) { metrics.ObserveDashboard("client", start, err) }(time.Now())

	if _, err = principal(ctx); err != nil {
		return nil, err
	}
	e, err := s.loadEngine(ctx, month)
	if err != nil {
		return nil, err
	}
	facts := e.Facts()

	results, err := resultsByID(e, profitability.DimensionClient)
	if err != nil {
		return nil, err
	}

	rows := make([]profitability.ClientDashboardRow, 0, len(facts.Clients))
	for _, c := range facts.Clients {
		result := results[c.ID]
		rows = append(rows, profitability.ClientDashboardRow{
			ID:            c.ID,
			Name:          c.Name,
			Industry:      c.Industry,
			ProjectCount:  len(e.ClientProjects(c.ID)),
			Revenue:       round2(result.Revenue),
			Cost:          round2(result.Cost),
			MarginPercent: round2(result.MarginPercent),
		})
	}

	return &profitability.ClientDashboardResponse{
		Month:   month.String(),
		Clients: rows,
	}, nil
}

// resultsByID computes every entity of the dimension and indexes the results by entity.
func resultsByID(e *engine.Engine, dimension profitability.Dimension) (map[string]profitability.Result, error) {
	results, err := e.ComputeAll(dimension)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]profitability.Result, len(results))
	for _, r := range results {
		byID[r.EntityID] = r
	}
	return byID, nil
}
