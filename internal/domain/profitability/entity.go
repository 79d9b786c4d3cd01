package profitability

import (
	"time"

	"github.com/shopspring/decimal"
)

type Department struct {
	ID   string
	Name string
}

type Employee struct {
	ID           string
	Code         string
	Name         string
	DepartmentID string
	Designation  string
	AnnualCTC    decimal.Decimal
	IsBillable   bool
	JoiningDate  time.Time
}

type Client struct {
	ID       string
	Name     string
	Industry string
	IsActive bool
}

type ProjectType string

const (
	ProjectTypeTimeAndMaterial ProjectType = "time_and_material"
	ProjectTypeFixedCost       ProjectType = "fixed_cost"
	ProjectTypeAMC             ProjectType = "amc"
	ProjectTypeInfrastructure  ProjectType = "infrastructure"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

type Project struct {
	ID                string
	Code              string
	Name              string
	ClientID          string
	Type              ProjectType
	Status            ProjectStatus
	ContractValue     *decimal.Decimal // non-T&M only
	BillingRate       *decimal.Decimal // T&M only
	StartDate         time.Time
	EndDate           *time.Time // nil while ongoing
	DeliveryManagerID *string
}

// InMonth reports whether the project counts towards the month's rollups:
// not cancelled and running at some point during the month.
func (p Project) InMonth(m Month) bool {
	if p.Status == ProjectStatusCancelled {
		return false
	}
	return m.Overlaps(p.StartDate, p.EndDate)
}

// TimesheetEntry is keyed by (EmployeeID, ProjectID, Month).
type TimesheetEntry struct {
	EmployeeID       string
	ProjectID        string
	Month            Month
	BillableHours    decimal.Decimal
	NonBillableHours decimal.Decimal
}

func (t TimesheetEntry) TotalHours() decimal.Decimal {
	return t.BillableHours.Add(t.NonBillableHours)
}

type RevenueRecord struct {
	ProjectID     string
	Month         Month
	InvoiceAmount decimal.Decimal
	InvoiceDate   time.Time
}

// Snapshot is the raw row set a month's rollups are computed from.
type Snapshot struct {
	Month       Month
	Departments []Department
	Employees   []Employee
	Clients     []Client
	Projects    []Project
	Timesheets  []TimesheetEntry
	Revenue     []RevenueRecord
}

type Dimension string

const (
	DimensionProject    Dimension = "project"
	DimensionEmployee   Dimension = "employee"
	DimensionDepartment Dimension = "department"
	DimensionClient     Dimension = "client"
)

// Result is a derived, never persisted, profitability figure for one entity and month.
type Result struct {
	EntityID      string
	Revenue       decimal.Decimal
	Cost          decimal.Decimal
	Profit        decimal.Decimal
	MarginPercent decimal.Decimal
}

func (r Result) IsZero() bool {
	return r.Revenue.IsZero() && r.Cost.IsZero()
}
