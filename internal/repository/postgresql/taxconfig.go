package postgresql

import (
	"context"
	"fmt"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/database"
)

// configRepository reads the configuration tables. The engine never writes
// them; maintenance happens through the surrounding ERP's CRUD screens.
type configRepository struct {
	db *database.DB
}

func NewConfigRepository(db *database.DB) taxconfig.ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) ListConstants(ctx context.Context) ([]taxconfig.Constant, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT key, value, updated_at FROM payroll_constants ORDER BY key`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll constants: %w", err)
	}
	defer rows.Close()

	var constants []taxconfig.Constant
	for rows.Next() {
		var c taxconfig.Constant
		if err := rows.Scan(&c.Key, &c.Value, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payroll constant: %w", err)
		}
		constants = append(constants, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return constants, nil
}

func (r *configRepository) ListTaxSettings(ctx context.Context) ([]taxconfig.TaxSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, contribution_type, employee_rate, employer_rate, ceiling, updated_at
		FROM payroll_tax_settings
		ORDER BY contribution_type`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax settings: %w", err)
	}
	defer rows.Close()

	var settings []taxconfig.TaxSetting
	for rows.Next() {
		var ts taxconfig.TaxSetting
		if err := rows.Scan(&ts.ID, &ts.Type, &ts.EmployeeRate, &ts.EmployerRate, &ts.Ceiling, &ts.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tax setting: %w", err)
		}
		settings = append(settings, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *configRepository) ListRiskBands(ctx context.Context) ([]taxconfig.RiskBand, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, department, work_accident_rate FROM risk_bands ORDER BY department`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list risk bands: %w", err)
	}
	defer rows.Close()

	var bands []taxconfig.RiskBand
	for rows.Next() {
		var b taxconfig.RiskBand
		if err := rows.Scan(&b.ID, &b.Department, &b.WorkAccidentRate); err != nil {
			return nil, fmt.Errorf("failed to scan risk band: %w", err)
		}
		bands = append(bands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bands, nil
}

func (r *configRepository) ListBrackets(ctx context.Context) ([]taxconfig.TaxBracket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lower_bound, upper_bound, rate, fixed_deduction
		FROM tax_brackets
		ORDER BY lower_bound`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax brackets: %w", err)
	}
	defer rows.Close()

	var brackets []taxconfig.TaxBracket
	for rows.Next() {
		var b taxconfig.TaxBracket
		if err := rows.Scan(&b.LowerBound, &b.UpperBound, &b.Rate, &b.FixedDeduction); err != nil {
			return nil, fmt.Errorf("failed to scan tax bracket: %w", err)
		}
		brackets = append(brackets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return brackets, nil
}
