package rbac

import (
	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
)

// Row-level visibility. Department heads see their own department only, delivery managers
// see the projects they manage; every other role sees all rows.

func CanSeeEmployee(p rbac.Principal, e profitability.Employee) bool {
	if p.Role != rbac.RoleDepartmentHead {
		return true
	}
	return p.DepartmentID != nil && *p.DepartmentID == e.DepartmentID
}

func CanSeeDepartment(p rbac.Principal, d profitability.Department) bool {
	if p.Role != rbac.RoleDepartmentHead {
		return true
	}
	return p.DepartmentID != nil && *p.DepartmentID == d.ID
}

func CanSeeProject(p rbac.Principal, project profitability.Project) bool {
	if p.Role != rbac.RoleDeliveryManager {
		return true
	}
	return project.DeliveryManagerID != nil && *project.DeliveryManagerID == p.UserID
}

func FilterEmployees(p rbac.Principal, employees []profitability.Employee) []profitability.Employee {
	return filter(employees, func(e profitability.Employee) bool { return CanSeeEmployee(p, e) })
}

func FilterDepartments(p rbac.Principal, departments []profitability.Department) []profitability.Department {
	return filter(departments, func(d profitability.Department) bool { return CanSeeDepartment(p, d) })
}

func FilterProjects(p rbac.Principal, projects []profitability.Project) []profitability.Project {
	return filter(projects, func(project profitability.Project) bool { return CanSeeProject(p, project) })
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}
