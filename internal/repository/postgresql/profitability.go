package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/profitpulse/profitpulse-api/internal/pkg/database"
)

type profitabilityRepositoryImpl struct {
	db *database.DB
}

func NewProfitabilityRepository(db *database.DB) profitability.ProfitabilityRepository {
	return &profitabilityRepositoryImpl{db: db}
}

// ListDepartments implements profitability.ProfitabilityRepository.
func (r *profitabilityRepositoryImpl) ListDepartments(ctx context.Context) ([]profitability.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM departments ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []profitability.Department
	for rows.Next() {
		var d profitability.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}

	return departments, nil
}

// ListEmployees implements profitability.ProfitabilityRepository.
func (r *profitabilityRepositoryImpl) ListEmployees(ctx context.Context) ([]profitability.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, name, department_id, designation, annual_ctc, is_billable, joining_date
		FROM employees
		ORDER BY name, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []profitability.Employee
	for rows.Next() {
		var e profitability.Employee
		if err := rows.Scan(
			&e.ID,
			&e.Code,
			&e.Name,
			&e.DepartmentID,
			&e.Designation,
			&e.AnnualCTC,
			&e.IsBillable,
			&e.JoiningDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// ListClients implements profitability.ProfitabilityRepository.
func (r *profitabilityRepositoryImpl) ListClients(ctx context.Context) ([]profitability.Client, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, COALESCE(industry, ''), is_active FROM clients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []profitability.Client
	for rows.Next() {
		var c profitability.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

// ListProjects implements profitability.ProfitabilityRepository.
func (r *profitabilityRepositoryImpl) ListProjects(ctx context.Context) ([]profitability.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, project_code, name, client_id, project_type, status,
			   contract_value, billing_rate, start_date, end_date, delivery_manager_id
		FROM projects
		ORDER BY project_code, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []profitability.Project
	for rows.Next() {
		var p profitability.Project
		if err := rows.Scan(
			&p.ID,
			&p.Code,
			&p.Name,
			&p.ClientID,
			&p.Type,
			&p.Status,
			&p.ContractValue,
			&p.BillingRate,
			&p.StartDate,
			&p.EndDate,
			&p.DeliveryManagerID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// ListTimesheetsByMonth implements profitability.ProfitabilityRepository.
func (r *profitabilityRepositoryImpl) ListTimesheetsByMonth(ctx context.Context, month profitability.Month) ([]profitability.TimesheetEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, project_id, month, billable_hours, non_billable_hours
		FROM timesheets
		WHERE month = $1
		ORDER BY employee_id, project_id
	`

	rows, err := q.Query(ctx, query, month.Start())
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	var entries []profitability.TimesheetEntry
	for rows.Next() {
		var (
			t          profitability.TimesheetEntry
			monthStart time.Time
		)
		if err := rows.Scan(&t.EmployeeID, &t.ProjectID, &monthStart, &t.BillableHours, &t.NonBillableHours); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		t.Month = profitability.MonthOf(monthStart)
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timesheets: %w", err)
	}

	return entries, nil
}

// ListRevenueByMonth implements profitability.ProfitabilityRepository.
func (r *profitabilityRepositoryImpl) ListRevenueByMonth(ctx context.Context, month profitability.Month) ([]profitability.RevenueRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT project_id, month, invoice_amount, invoice_date
		FROM revenue_records
		WHERE month = $1
		ORDER BY project_id, invoice_date
	`

	rows, err := q.Query(ctx, query, month.Start())
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue records: %w", err)
	}
	defer rows.Close()

	var records []profitability.RevenueRecord
	for rows.Next() {
		var (
			rec        profitability.RevenueRecord
			monthStart time.Time
		)
		if err := rows.Scan(&rec.ProjectID, &monthStart, &rec.InvoiceAmount, &rec.InvoiceDate); err != nil {
			return nil, fmt.Errorf("failed to scan revenue record: %w", err)
		}
		rec.Month = profitability.MonthOf(monthStart)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate revenue records: %w", err)
	}

	return records, nil
}
