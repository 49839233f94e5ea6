package payroll

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/contract"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/validator"
)

// ===== FAKES =====

type fakePayrollRepo struct {
	records map[string]payroll.PayrollRecord
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.PayrollRecord)}
}

func (f *fakePayrollRepo) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.EmployeeID == record.EmployeeID && r.PeriodMonth == record.PeriodMonth && r.PeriodYear == record.PeriodYear {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}
	record.ID = uuid.Must(uuid.NewV7()).String()
	f.records[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) ReplacePayrollRecord(ctx context.Context, oldID string, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if err := f.DeletePayrollRecord(ctx, oldID); err != nil {
		return payroll.PayrollRecord{}, err
	}
	return f.CreatePayrollRecord(ctx, record)
}

func (f *fakePayrollRepo) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.PeriodMonth == month && r.PeriodYear == year {
			return r, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) UpdatePayrollRecord(ctx context.Context, req payroll.UpdatePayrollRecordRequest) error {
	r, ok := f.records[req.ID]
	if !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	if r.Status == payroll.PayrollStatusFinal {
		return payroll.ErrPayrollRecordFinalized
	}
	if req.BaseSalary != nil {
		r.BaseSalary = *req.BaseSalary
	}
	if req.OvertimeAmount != nil {
		r.OvertimeAmount = *req.OvertimeAmount
	}
	if req.Bonuses != nil {
		r.Bonuses = *req.Bonuses
	}
	if req.Allowances != nil {
		r.Allowances = *req.Allowances
	}
	if req.OtherDeduction != nil {
		r.OtherDeductions = *req.OtherDeduction
	}
	if req.Notes != nil {
		r.Notes = req.Notes
	}
	f.records[req.ID] = r
	return nil
}

func (f *fakePayrollRepo) FinalizePayrollRecords(ctx context.Context, ids []string, finalizedBy string) error {
	for _, id := range ids {
		r, ok := f.records[id]
		if !ok {
			return payroll.ErrPayrollRecordNotFound
		}
		r.Status = payroll.PayrollStatusFinal
		if finalizedBy != "" {
			r.FinalizedBy = &finalizedBy
		}
		f.records[id] = r
	}
	return nil
}

func (f *fakePayrollRepo) DeletePayrollRecord(ctx context.Context, id string) error {
	r, ok := f.records[id]
	if !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	if r.Status == payroll.PayrollStatusFinal {
		return payroll.ErrCannotDeleteFinalRecord
	}
	delete(f.records, id)
	return nil
}

func (f *fakePayrollRepo) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	summary := payroll.PayrollSummaryResponse{PeriodMonth: month, PeriodYear: year}
	for _, r := range f.records {
		if r.PeriodMonth != month || r.PeriodYear != year {
			continue
		}
		summary.TotalEmployees++
		summary.TotalGrossPay = summary.TotalGrossPay.Add(r.GrossPay)
		summary.TotalNetPay = summary.TotalNetPay.Add(r.NetPay)
		summary.TotalIncomeTax = summary.TotalIncomeTax.Add(r.IncomeTax)
		summary.TotalEmployeeContributions = summary.TotalEmployeeContributions.Add(r.TotalEmployeeContributions)
		summary.TotalEmployerCharges = summary.TotalEmployerCharges.Add(r.TotalEmployerCharges)
		if r.Status == payroll.PayrollStatusFinal {
			summary.FinalCount++
		} else {
			summary.DraftCount++
		}
	}
	return summary, nil
}

type fakeContractRepo struct {
	contracts map[string]contract.Contract // keyed by employee ID
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{contracts: make(map[string]contract.Contract)}
}

func (f *fakeContractRepo) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	f.contracts[c.EmployeeID] = c
	return c, nil
}

func (f *fakeContractRepo) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	for _, c := range f.contracts {
		if c.ID == id {
			return c, nil
		}
	}
	return contract.Contract{}, contract.ErrContractNotFound
}

func (f *fakeContractRepo) GetActiveByEmployeeID(ctx context.Context, employeeID string) (contract.Contract, error) {
	c, ok := f.contracts[employeeID]
	if !ok || c.Status != contract.ContractStatusActive {
		return contract.Contract{}, contract.ErrNoActiveContract
	}
	return c, nil
}

func (f *fakeContractRepo) ListByEmployeeID(ctx context.Context, employeeID string) ([]contract.Contract, error) {
	c, ok := f.contracts[employeeID]
	if !ok {
		return nil, nil
	}
	return []contract.Contract{c}, nil
}

type fakeConfigResolver struct {
	snapshot taxconfig.Snapshot
	err      error
}

func (f *fakeConfigResolver) Resolve(ctx context.Context) (taxconfig.Snapshot, error) {
	if f.err != nil {
		return taxconfig.Snapshot{}, f.err
	}
	return f.snapshot, nil
}

func newTestService() (payroll.PayrollService, *fakePayrollRepo, *fakeContractRepo) {
	payrollRepo := newFakePayrollRepo()
	contractRepo := newFakeContractRepo()
	resolver := &fakeConfigResolver{snapshot: taxconfig.DefaultSnapshot()}
	svc := NewPayrollService(nil, payrollRepo, contractRepo, resolver)
	return svc, payrollRepo, contractRepo
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// ===== GENERATION =====

func TestPayrollService_Generate_ReferenceScenario(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("500000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", result.EmployeeID)
	assert.Equal(t, "2025-03", result.PeriodLabel)
	assert.Equal(t, "XAF", result.Currency)
	assert.Equal(t, "draft", result.Status)
	assert.False(t, result.Incomplete)

	assert.True(t, result.GrossPay.Equal(d("500000")), "gross %s", result.GrossPay)
	assert.True(t, result.EmployeeContributions.Retirement.Equal(d("21000")))
	assert.True(t, result.EmployeeContributions.Total.Equal(d("21000")))
	assert.True(t, result.TaxableIncome.Equal(d("479000")), "taxable %s", result.TaxableIncome)
	assert.True(t, result.TaxableAfterAbatement.Equal(d("383200")))
	assert.True(t, result.IncomeTax.Equal(d("35780")), "tax %s", result.IncomeTax)
	assert.True(t, result.NetPay.Equal(d("443220")), "net %s", result.NetPay)

	// Employer charges on a 500000 gross with default rates.
	assert.True(t, result.EmployerContributions.Retirement.Equal(d("21000")))
	assert.True(t, result.EmployerContributions.Family.Equal(d("35000")))
	assert.True(t, result.EmployerContributions.WorkAccident.Equal(d("12500")))
	assert.True(t, result.EmployerContributions.Health.Equal(d("10000")))
	assert.True(t, result.EmployerContributions.TrainingFund.Equal(d("5000")))
	assert.True(t, result.EmployerContributions.HousingLevy.Equal(d("7500")))
	assert.True(t, result.EmployerContributions.EmploymentLevy.Equal(d("5000")))
	assert.True(t, result.EmployerContributions.Total.Equal(d("96000")))

	require.NotNil(t, result.Details)
	assert.Equal(t, payroll.RateSourceDefault, result.Details.WorkAccidentRateSource)
}

// The stored breakdown must reconstruct every aggregate by pure addition and
// subtraction of its components.
func TestPayrollService_Generate_BreakdownRoundTrip(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID:     "emp-rt",
		Month:          4,
		Year:           2025,
		BaseSalary:     dp("357123"),
		Overtime:       dp("12345.67"),
		Bonuses:        dp("25000"),
		Allowances:     dp("11111.11"),
		OtherDeduction: dp("4321"),
		Deductions: []payroll.DeductionLine{
			{Label: "advance", Amount: d("10000")},
		},
		FiscalParts: intPtr(2),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Details)
	b := result.Details

	gross := b.FlooredBaseSalary.Add(b.OvertimeAmount).Add(b.Bonuses).Add(b.Allowances)
	assert.True(t, gross.Equal(b.GrossPay), "gross: %s vs %s", gross, b.GrossPay)

	totalEmployee := b.EmployeeRetirement.Add(b.HousingLevyEmployee).Add(b.EmploymentLevyEmployee)
	assert.True(t, totalEmployee.Equal(b.TotalEmployeeContributions))

	totalEmployer := b.EmployerRetirement.Add(b.FamilyContribution).Add(b.WorkAccident).
		Add(b.HealthContribution).Add(b.TrainingFund).Add(b.HousingLevyEmployer).Add(b.EmploymentLevyEmployer)
	assert.True(t, totalEmployer.Equal(b.TotalEmployerCharges))

	assert.True(t, b.GrossPay.Sub(b.TotalEmployeeContributions).Equal(b.TaxableIncome))

	net := b.GrossPay.Sub(b.TotalEmployeeContributions).Sub(b.IncomeTax).
		Sub(b.OtherDeductions).Sub(b.DeductionLineTotal)
	assert.True(t, net.Equal(b.NetPay), "net: %s vs %s", net, b.NetPay)
}

func TestPayrollService_Generate_BaseSalaryFromContract(t *testing.T) {
	svc, _, contractRepo := newTestService()
	ctx := context.Background()

	contractRepo.contracts["emp-2"] = contract.Contract{
		ID:         "ct-1",
		EmployeeID: "emp-2",
		BaseSalary: d("500000"),
		Status:     contract.ContractStatusActive,
	}

	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-2",
		Period:     "2025-03",
	})
	require.NoError(t, err)

	assert.True(t, result.BaseSalary.Equal(d("500000")))
	assert.True(t, result.NetPay.Equal(d("443220")))
}

func TestPayrollService_Generate_NoContractNoSalary(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-ghost",
		Month:      3,
		Year:       2025,
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "baseSalaire", verrs[0].Field)
}

func TestPayrollService_Generate_DuplicatePeriod(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := payroll.GeneratePayrollRequest{
		EmployeeID: "emp-3",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("300000"),
	}

	_, err := svc.Generate(ctx, req)
	require.NoError(t, err)

	_, err = svc.Generate(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}

func TestPayrollService_Generate_OvertimeSlices(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	direct := d("999999")
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-ot",
		Month:      5,
		Year:       2025,
		BaseSalary: dp("300000"),
		Overtime:   &direct,
		OvertimeDetail: []payroll.OvertimeSlice{
			{Hours: d("10"), Multiplier: d("1.5")},
		},
	})
	require.NoError(t, err)

	// Slices override the direct amount: 10 * (300000/173) * 1.5.
	assert.True(t, result.OvertimeAmount.Equal(d("26011.56")), "got %s", result.OvertimeAmount)
	assert.True(t, result.GrossPay.Equal(d("326011.56")))
	require.NotNil(t, result.Details)
	require.NotNil(t, result.Details.HourlyRate)
}

func TestPayrollService_Generate_FiscalPartsClamped(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	six := 6
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID:  "emp-parts",
		Month:       6,
		Year:        2025,
		BaseSalary:  dp("1500000"),
		FiscalParts: &six,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.FiscalParts)
}

func TestPayrollService_Generate_MinimumWageFloor(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-low",
		Month:      7,
		Year:       2025,
		BaseSalary: dp("20000"),
	})
	require.NoError(t, err)

	// Gross is composed from the floored base.
	assert.True(t, result.GrossPay.Equal(d("41875")), "gross %s", result.GrossPay)
	require.NotNil(t, result.Details)
	assert.True(t, result.Details.DeclaredBaseSalary.Equal(d("20000")))
	assert.True(t, result.Details.FlooredBaseSalary.Equal(d("41875")))
}

func TestPayrollService_Generate_RiskBandRate(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	contractRepo := newFakeContractRepo()
	snapshot := taxconfig.DefaultSnapshot()
	snapshot.RiskBands = []taxconfig.RiskBand{
		{Department: "Mining", WorkAccidentRate: d("0.05")},
	}
	svc := NewPayrollService(nil, payrollRepo, contractRepo, &fakeConfigResolver{snapshot: snapshot})
	ctx := context.Background()

	dept := "Mining"
	contractRepo.contracts["emp-risk"] = contract.Contract{
		ID:         "ct-risk",
		EmployeeID: "emp-risk",
		BaseSalary: d("500000"),
		Department: &dept,
		Status:     contract.ContractStatusActive,
	}

	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-risk",
		Month:      8,
		Year:       2025,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Details)
	assert.Equal(t, payroll.RateSourceRiskBand, result.Details.WorkAccidentRateSource)
	assert.True(t, result.EmployerContributions.WorkAccident.Equal(d("25000")), "got %s", result.EmployerContributions.WorkAccident)
}

func TestPayrollService_Generate_ConfigUnavailable(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	contractRepo := newFakeContractRepo()
	resolver := &fakeConfigResolver{err: taxconfig.ErrConfigurationUnavailable}
	svc := NewPayrollService(nil, payrollRepo, contractRepo, resolver)

	_, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-cfg",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("500000"),
	})
	assert.ErrorIs(t, err, taxconfig.ErrConfigurationUnavailable)
	assert.Empty(t, payrollRepo.records)
}

func TestPayrollService_Generate_ValidationErrors(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "",
		Month:      13,
		Year:       1999,
		BaseSalary: dp("-5"),
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := verrs.ToMap()
	assert.Contains(t, fields, "employeeId")
	assert.Contains(t, fields, "mois")
	assert.Contains(t, fields, "annee")
	assert.Contains(t, fields, "baseSalaire")
}

// ===== REGENERATION =====

func TestPayrollService_Regenerate_ReplacesDraft(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-4",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("300000"),
	})
	require.NoError(t, err)

	second, err := svc.Regenerate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-4",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("500000"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.NetPay.Equal(d("443220")))
	assert.Len(t, repo.records, 1)
}

func TestPayrollService_Regenerate_FinalizedRecordRefused(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-5",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("300000"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Finalize(ctx, payroll.FinalizePayrollRequest{RecordIDs: []string{created.ID}}))

	_, err = svc.Regenerate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-5",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("500000"),
	})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordFinalized)
}

// ===== UPDATE / FINALIZE / DELETE =====

func TestPayrollService_Update_StoredFieldsOnly(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-6",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("500000"),
	})
	require.NoError(t, err)

	notes := "manual correction"
	updated, err := svc.Update(ctx, payroll.UpdatePayrollRecordRequest{
		ID:      created.ID,
		Bonuses: dp("50000"),
		Notes:   &notes,
	})
	require.NoError(t, err)

	assert.True(t, updated.Bonuses.Equal(d("50000")))
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "manual correction", *updated.Notes)
	// Partial update never recomputes.
	assert.True(t, updated.NetPay.Equal(created.NetPay))
}

func TestPayrollService_Update_FinalizedRefused(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-7",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("300000"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Finalize(ctx, payroll.FinalizePayrollRequest{RecordIDs: []string{created.ID}}))

	_, err = svc.Update(ctx, payroll.UpdatePayrollRecordRequest{ID: created.ID, Bonuses: dp("1")})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordFinalized)
}

func TestPayrollService_Delete_FinalizedRefused(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-8",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("300000"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Finalize(ctx, payroll.FinalizePayrollRequest{RecordIDs: []string{created.ID}}))

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrCannotDeleteFinalRecord)
}

func TestPayrollService_Delete_Draft(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-9",
		Month:      3,
		Year:       2025,
		BaseSalary: dp("300000"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.records)
}

func TestPayrollService_Summary(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i, salary := range []string{"300000", "500000"} {
		_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
			EmployeeID: fmt.Sprintf("emp-sum-%d", i),
			Month:      9,
			Year:       2025,
			BaseSalary: dp(salary),
		})
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, 9, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalEmployees)
	assert.Equal(t, 2, summary.DraftCount)
	assert.True(t, summary.TotalGrossPay.Equal(d("800000")))
}

func intPtr(v int) *int {
	return &v
}
