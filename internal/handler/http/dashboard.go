package http

import (
	"net/http"
	"time"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/profitpulse/profitpulse-api/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetExecutive returns the company-wide rollup
	GetExecutive(w http.ResponseWriter, r *http.Request)
	// GetProjects returns per-project profitability
	GetProjects(w http.ResponseWriter, r *http.Request)
	// GetEmployees returns per-employee profitability
	GetEmployees(w http.ResponseWriter, r *http.Request)
	// GetDepartments returns per-department profitability
	GetDepartments(w http.ResponseWriter, r *http.Request)
	// GetClients returns per-client profitability
	GetClients(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService profitability.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(dashboardService profitability.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, now: time.Now}
}

// serve parses the month, runs fn and writes the result
func serve[T any](h *dashboardHandlerImpl, w http.ResponseWriter, r *http.Request, fn func(*http.Request, profitability.Month) (T, error)) {
	month, err := parseMonthQuery(r, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := fn(r, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetExecutive handles GET /dashboard/executive
func (h *dashboardHandlerImpl) GetExecutive(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, func(r *http.Request, m profitability.Month) (*profitability.ExecutiveDashboardResponse, error) {
		return h.dashboardService.GetExecutive(r.Context(), m)
	})
}

// GetProjects handles GET /dashboard/project
func (h *dashboardHandlerImpl) GetProjects(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, func(r *http.Request, m profitability.Month) (*profitability.ProjectDashboardResponse, error) {
		return h.dashboardService.GetProjects(r.Context(), m)
	})
}

// GetEmployees handles GET /dashboard/employee
func (h *dashboardHandlerImpl) GetEmployees(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, func(r *http.Request, m profitability.Month) (*profitability.EmployeeDashboardResponse, error) {
		return h.dashboardService.GetEmployees(r.Context(), m)
	})
}

// GetDepartments handles GET /dashboard/department
func (h *dashboardHandlerImpl) GetDepartments(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, func(r *http.Request, m profitability.Month) (*profitability.DepartmentDashboardResponse, error) {
		return h.dashboardService.GetDepartments(r.Context(), m)
	})
}

// GetClients handles GET /dashboard/client
func (h *dashboardHandlerImpl) GetClients(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, func(r *http.Request, m profitability.Month) (*profitability.ClientDashboardResponse, error) {
		return h.dashboardService.GetClients(r.Context(), m)
	})
}
