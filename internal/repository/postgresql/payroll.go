package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollRecordColumns = `
	id, employee_id, contract_id, period_month, period_year, period_label, currency,
	base_salary, overtime_amount, overtime_detail, bonuses, allowances,
	other_deductions, deduction_lines, fiscal_parts, gross_pay,
	employee_retirement, housing_levy_employee, employment_levy_employee,
	employer_retirement, family_contribution, work_accident_contribution,
	health_contribution, training_fund_contribution,
	housing_levy_employer, employment_levy_employer,
	total_employee_contributions, total_employer_charges,
	taxable_income, taxable_after_abatement, income_tax, net_pay,
	status, incomplete, breakdown, notes, finalized_at, finalized_by,
	created_at, updated_at`

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.Must(uuid.NewV7()).String()
	}

	overtimeDetail, err := json.Marshal(record.OvertimeDetail)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode overtime detail: %w", err)
	}
	deductionLines, err := json.Marshal(record.DeductionLines)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode deduction lines: %w", err)
	}
	breakdown, err := json.Marshal(record.Breakdown)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode breakdown: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			id, employee_id, contract_id, period_month, period_year, period_label, currency,
			base_salary, overtime_amount, overtime_detail, bonuses, allowances,
			other_deductions, deduction_lines, fiscal_parts, gross_pay,
			employee_retirement, housing_levy_employee, employment_levy_employee,
			employer_retirement, family_contribution, work_accident_contribution,
			health_contribution, training_fund_contribution,
			housing_levy_employer, employment_levy_employer,
			total_employee_contributions, total_employer_charges,
			taxable_income, taxable_after_abatement, income_tax, net_pay,
			status, incomplete, breakdown
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33, $34, $35
		)
		RETURNING ` + payrollRecordColumns

	row := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.ContractID, record.PeriodMonth, record.PeriodYear, record.PeriodLabel, record.Currency,
		record.BaseSalary, record.OvertimeAmount, overtimeDetail, record.Bonuses, record.Allowances,
		record.OtherDeductions, deductionLines, record.FiscalParts, record.GrossPay,
		record.EmployeeRetirement, record.HousingLevyEmployee, record.EmploymentLevyEmployee,
		record.EmployerRetirement, record.FamilyContribution, record.WorkAccident,
		record.HealthContribution, record.TrainingFund,
		record.HousingLevyEmployer, record.EmploymentLevyEmployer,
		record.TotalEmployeeContributions, record.TotalEmployerCharges,
		record.TaxableIncome, record.TaxableAfterAbatement, record.IncomeTax, record.NetPay,
		record.Status, record.Incomplete, breakdown,
	)

	created, err := scanPayrollRecord(row)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_record_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

// ReplacePayrollRecord swaps a draft record for a freshly computed one in a
// single transaction, so a failed insert never loses the period.
func (r *payrollRepository) ReplacePayrollRecord(ctx context.Context, oldID string, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	var created payroll.PayrollRecord

	err := WithTransaction(ctx, r.db, func(txCtx context.Context, tx pgx.Tx) error {
		if err := r.DeletePayrollRecord(txCtx, oldID); err != nil {
			return err
		}
		var err error
		created, err = r.CreatePayrollRecord(txCtx, record)
		return err
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	return created, nil
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollRecordColumns + ` FROM payroll_records WHERE id = $1`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
		ORDER BY created_at DESC
		LIMIT 1`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereParts := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		whereParts = append(whereParts, fmt.Sprintf("period_month = $%d", argIdx))
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		whereParts = append(whereParts, fmt.Sprintf("period_year = $%d", argIdx))
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		whereParts = append(whereParts, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	where := strings.Join(whereParts, " AND ")

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM payroll_records WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	sortBy := "created_at"
	switch filter.SortBy {
	case "period", "period_year", "net_pay", "gross_pay", "created_at":
		if filter.SortBy == "period" {
			sortBy = "period_year, period_month"
		} else {
			sortBy = filter.SortBy
		}
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT %s FROM payroll_records
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		payrollRecordColumns, where, sortBy, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		record, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

func (r *payrollRepository) UpdatePayrollRecord(ctx context.Context, req payroll.UpdatePayrollRecordRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.BaseSalary != nil {
		setParts = append(setParts, fmt.Sprintf("base_salary = $%d", argIdx))
		args = append(args, *req.BaseSalary)
		argIdx++
	}
	if req.OvertimeAmount != nil {
		setParts = append(setParts, fmt.Sprintf("overtime_amount = $%d", argIdx))
		args = append(args, *req.OvertimeAmount)
		argIdx++
	}
	if req.Bonuses != nil {
		setParts = append(setParts, fmt.Sprintf("bonuses = $%d", argIdx))
		args = append(args, *req.Bonuses)
		argIdx++
	}
	if req.Allowances != nil {
		setParts = append(setParts, fmt.Sprintf("allowances = $%d", argIdx))
		args = append(args, *req.Allowances)
		argIdx++
	}
	if req.OtherDeduction != nil {
		setParts = append(setParts, fmt.Sprintf("other_deductions = $%d", argIdx))
		args = append(args, *req.OtherDeduction)
		argIdx++
	}
	if req.Notes != nil {
		setParts = append(setParts, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, *req.Notes)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE payroll_records
		SET %s
		WHERE id = $1 AND status = 'draft'
		RETURNING id`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to update payroll record: %w", err)
	}

	return nil
}

func (r *payrollRepository) FinalizePayrollRecords(ctx context.Context, ids []string, finalizedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'final', finalized_at = NOW(), finalized_by = NULLIF($2, ''), updated_at = NOW()
		WHERE id = ANY($1) AND status = 'draft'`

	tag, err := q.Exec(ctx, query, ids, finalizedBy)
	if err != nil {
		return fmt.Errorf("failed to finalize payroll records: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

func (r *payrollRepository) DeletePayrollRecord(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_records WHERE id = $1 AND status = 'draft'`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

func (r *payrollRepository) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(DISTINCT employee_id),
			COALESCE(SUM(gross_pay), 0),
			COALESCE(SUM(total_employee_contributions), 0),
			COALESCE(SUM(total_employer_charges), 0),
			COALESCE(SUM(income_tax), 0),
			COALESCE(SUM(net_pay), 0),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'final')
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2`

	summary := payroll.PayrollSummaryResponse{PeriodMonth: month, PeriodYear: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&summary.TotalEmployees,
		&summary.TotalGrossPay,
		&summary.TotalEmployeeContributions,
		&summary.TotalEmployerCharges,
		&summary.TotalIncomeTax,
		&summary.TotalNetPay,
		&summary.DraftCount,
		&summary.FinalCount,
	)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return summary, nil
}

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var record payroll.PayrollRecord
	var overtimeDetail, deductionLines, breakdown []byte

	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.ContractID, &record.PeriodMonth, &record.PeriodYear,
		&record.PeriodLabel, &record.Currency,
		&record.BaseSalary, &record.OvertimeAmount, &overtimeDetail, &record.Bonuses, &record.Allowances,
		&record.OtherDeductions, &deductionLines, &record.FiscalParts, &record.GrossPay,
		&record.EmployeeRetirement, &record.HousingLevyEmployee, &record.EmploymentLevyEmployee,
		&record.EmployerRetirement, &record.FamilyContribution, &record.WorkAccident,
		&record.HealthContribution, &record.TrainingFund,
		&record.HousingLevyEmployer, &record.EmploymentLevyEmployer,
		&record.TotalEmployeeContributions, &record.TotalEmployerCharges,
		&record.TaxableIncome, &record.TaxableAfterAbatement, &record.IncomeTax, &record.NetPay,
		&record.Status, &record.Incomplete, &breakdown, &record.Notes,
		&record.FinalizedAt, &record.FinalizedBy,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	if len(overtimeDetail) > 0 {
		if err := json.Unmarshal(overtimeDetail, &record.OvertimeDetail); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to decode overtime detail: %w", err)
		}
	}
	if len(deductionLines) > 0 {
		if err := json.Unmarshal(deductionLines, &record.DeductionLines); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to decode deduction lines: %w", err)
		}
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &record.Breakdown); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to decode breakdown: %w", err)
		}
	}

	return record, nil
}
