package profitability

// ========== EXECUTIVE ==========

// ExecutiveDashboardResponse is the company-wide rollup for a month
type ExecutiveDashboardResponse struct {
	Month              string              `json:"month"`
	TotalRevenue       float64             `json:"total_revenue"`
	TotalCost          float64             `json:"total_cost"`
	GrossMarginPercent float64             `json:"gross_margin_percent"`
	UtilizationPercent float64             `json:"utilization_percent"`
	Top5Projects       []ProjectMarginItem `json:"top_5_projects"`
	Bottom5Projects    []ProjectMarginItem `json:"bottom_5_projects"`
}

type ProjectMarginItem struct {
	ProjectCode   string  `json:"project_code"`
	Revenue       float64 `json:"revenue"`
	MarginPercent float64 `json:"margin_percent"`
}

// ========== PROJECT ==========

type ProjectDashboardResponse struct {
	Month    string                `json:"month"`
	Projects []ProjectDashboardRow `json:"projects"`
	Summary  ProjectSummary        `json:"summary"`
}

type ProjectDashboardRow struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ProjectCode   string  `json:"project_code"`
	ClientName    string  `json:"client_name"`
	ProjectType   string  `json:"project_type"`
	Revenue       float64 `json:"revenue"`
	Cost          float64 `json:"cost"`
	MarginPercent float64 `json:"margin_percent"`
}

type ProjectSummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalCost     float64 `json:"total_cost"`
	TotalProfit   float64 `json:"total_profit"`
	MarginPercent float64 `json:"margin_percent"`
	ProjectCount  int     `json:"project_count"`
}

// ========== EMPLOYEE ==========

type EmployeeDashboardResponse struct {
	Month     string                 `json:"month"`
	Employees []EmployeeDashboardRow `json:"employees"`
}

type EmployeeDashboardRow struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Department          string  `json:"department"`
	Designation         string  `json:"designation"`
	BillablePercent     float64 `json:"billable_percent"`
	RevenueContribution float64 `json:"revenue_contribution"`
	Cost                float64 `json:"cost"`
	Profit              float64 `json:"profit"`
	MarginPercent       float64 `json:"margin_percent"`
}

// ========== DEPARTMENT ==========

type DepartmentDashboardResponse struct {
	Month       string                   `json:"month"`
	Departments []DepartmentDashboardRow `json:"departments"`
}

type DepartmentDashboardRow struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	EmployeeCount      int     `json:"employee_count"`
	UtilizationPercent float64 `json:"utilization_percent"`
	Revenue            float64 `json:"revenue"`
	Cost               float64 `json:"cost"`
	MarginPercent      float64 `json:"margin_percent"`
}

// ========== CLIENT ==========

type ClientDashboardResponse struct {
	Month   string               `json:"month"`
	Clients []ClientDashboardRow `json:"clients"`
}

type ClientDashboardRow struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Industry      string  `json:"industry"`
	ProjectCount  int     `json:"project_count"`
	Revenue       float64 `json:"revenue"`
	Cost          float64 `json:"cost"`
	MarginPercent float64 `json:"margin_percent"`
}
