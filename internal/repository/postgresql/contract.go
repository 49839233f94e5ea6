package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/contract"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/database"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `
	id, employee_id, base_salary, weekly_hours, monthly_hours, department,
	work_accident_rate, status, start_date, end_date, created_at, updated_at`

func (r *contractRepository) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO contracts (
			id, employee_id, base_salary, weekly_hours, monthly_hours, department,
			work_accident_rate, status, start_date, end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + contractColumns

	created, err := scanContract(q.QueryRow(ctx, query,
		c.ID, c.EmployeeID, c.BaseSalary, c.WeeklyHours, c.MonthlyHours, c.Department,
		c.WorkAccidentRate, c.Status, c.StartDate, c.EndDate,
	))
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}

	return created, nil
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`

	c, err := scanContract(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}

	return c, nil
}

// GetActiveByEmployeeID returns the most recently started active contract,
// the one authoritative for payroll computation.
func (r *contractRepository) GetActiveByEmployeeID(ctx context.Context, employeeID string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE employee_id = $1 AND status = $2
		ORDER BY start_date DESC
		LIMIT 1`

	c, err := scanContract(q.QueryRow(ctx, query, employeeID, contract.ContractStatusActive))
	if err != nil {
		if err == pgx.ErrNoRows {
			return contract.Contract{}, contract.ErrNoActiveContract
		}
		return contract.Contract{}, fmt.Errorf("failed to get active contract: %w", err)
	}

	return c, nil
}

func (r *contractRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE employee_id = $1
		ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contracts, nil
}

func scanContract(row pgx.Row) (contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.BaseSalary, &c.WeeklyHours, &c.MonthlyHours, &c.Department,
		&c.WorkAccidentRate, &c.Status, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return contract.Contract{}, err
	}
	return c, nil
}
