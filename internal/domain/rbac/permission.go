package rbac

import (
	"slices"
	"sort"
)

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleFinance         Role = "finance"
	RoleDeliveryManager Role = "delivery_manager"
	RoleDepartmentHead  Role = "department_head"
	RoleHR              Role = "hr"
)

// Roles lists every known role
var Roles = []Role{RoleAdmin, RoleFinance, RoleDeliveryManager, RoleDepartmentHead, RoleHR}

func (r Role) IsValid() bool {
	return slices.Contains(Roles, r)
}

type Scope string

const (
	// Wildcard
	ScopeAll Scope = "all"

	// Dashboards
	ScopeDashboardExecutive  Scope = "dashboard:executive"
	ScopeDashboardProject    Scope = "dashboard:project"
	ScopeDashboardEmployee   Scope = "dashboard:employee"
	ScopeDashboardDepartment Scope = "dashboard:department"
	ScopeDashboardClient     Scope = "dashboard:client"

	// Master data
	ScopeEmployees  Scope = "employees"
	ScopeProjects   Scope = "projects"
	ScopeClients    Scope = "clients"
	ScopeTimesheets Scope = "timesheets"
	ScopeRevenue    Scope = "revenue"
	ScopeUploads    Scope = "uploads"

	// Administration
	ScopeConfig Scope = "config"
	ScopeUsers  Scope = "users"
)

// Scopes lists every known scope
var Scopes = []Scope{
	ScopeAll,
	ScopeDashboardExecutive,
	ScopeDashboardProject,
	ScopeDashboardEmployee,
	ScopeDashboardDepartment,
	ScopeDashboardClient,
	ScopeEmployees,
	ScopeProjects,
	ScopeClients,
	ScopeTimesheets,
	ScopeRevenue,
	ScopeUploads,
	ScopeConfig,
	ScopeUsers,
}

func (s Scope) IsValid() bool {
	return slices.Contains(Scopes, s)
}

// ScopeSet is an unordered set of scopes. A set containing ScopeAll grants everything.
type ScopeSet map[Scope]struct{}

func NewScopeSet(scopes ...Scope) ScopeSet {
	set := make(ScopeSet, len(scopes))
	for _, s := range scopes {
		set[s] = struct{}{}
	}
	return set
}

func (s ScopeSet) Has(scope Scope) bool {
	if _, ok := s[ScopeAll]; ok {
		return true
	}
	_, ok := s[scope]
	return ok
}

// List returns the scopes in sorted order
func (s ScopeSet) List() []Scope {
	out := make([]Scope, 0, len(s))
	for scope := range s {
		out = append(out, scope)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s ScopeSet) Clone() ScopeSet {
	out := make(ScopeSet, len(s))
	for scope := range s {
		out[scope] = struct{}{}
	}
	return out
}

// Matrix maps each role to the scopes it holds
type Matrix map[Role]ScopeSet

// DefaultMatrix returns a fresh copy of the built-in role matrix
func DefaultMatrix() Matrix {
	return Matrix{
		RoleAdmin: NewScopeSet(ScopeAll),
		RoleFinance: NewScopeSet(
			ScopeDashboardExecutive,
			ScopeDashboardProject,
			ScopeDashboardEmployee,
			ScopeDashboardDepartment,
			ScopeDashboardClient,
			ScopeProjects,
			ScopeClients,
			ScopeRevenue,
			ScopeUploads,
		),
		RoleDeliveryManager: NewScopeSet(
			ScopeDashboardProject,
			ScopeDashboardEmployee,
			ScopeProjects,
			ScopeTimesheets,
		),
		RoleDepartmentHead: NewScopeSet(
			ScopeDashboardEmployee,
			ScopeDashboardDepartment,
			ScopeEmployees,
			ScopeTimesheets,
		),
		RoleHR: NewScopeSet(
			ScopeDashboardEmployee,
			ScopeDashboardDepartment,
			ScopeEmployees,
			ScopeUploads,
		),
	}
}

// Allows reports whether role holds scope. Admin always passes regardless of the matrix contents.
func (m Matrix) Allows(role Role, scope Scope) bool {
	if role == RoleAdmin {
		return true
	}
	set, ok := m[role]
	if !ok {
		return false
	}
	return set.Has(scope)
}

func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for role, set := range m {
		out[role] = set.Clone()
	}
	return out
}
