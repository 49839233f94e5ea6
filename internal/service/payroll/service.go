package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/contract"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/database"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/validator"
)

// ConfigResolver provides the resolved statutory configuration snapshot.
// Implemented by service/taxconfig.Resolver.
type ConfigResolver interface {
	Resolve(ctx context.Context) (taxconfig.Snapshot, error)
}

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	contractRepo contract.ContractRepository
	config       ConfigResolver
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	contractRepo contract.ContractRepository,
	config ConfigResolver,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		contractRepo: contractRepo,
		config:       config,
	}
}

// userIDFromContext reads the acting user from the JWT claims, if any. The
// engine only uses it for audit fields.
func userIDFromContext(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return &userID
	}
	return nil
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	return s.generate(ctx, req, false)
}

func (s *PayrollServiceImpl) Regenerate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	return s.generate(ctx, req, true)
}

func (s *PayrollServiceImpl) generate(ctx context.Context, req payroll.GeneratePayrollRequest, replace bool) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	month, year, label, err := req.ResolvePeriod()
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	cfg, err := s.config.Resolve(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	// The active contract supplies the base salary when the request omits
	// it, and feeds the work-accident rate chain. A missing contract is
	// only an error when the salary cannot be resolved without it.
	var activeContract *contract.Contract
	ct, err := s.contractRepo.GetActiveByEmployeeID(ctx, req.EmployeeID)
	switch {
	case err == nil:
		activeContract = &ct
	case errors.Is(err, contract.ErrNoActiveContract):
		if req.BaseSalary == nil {
			return payroll.PayrollRecordResponse{}, validator.ValidationErrors{
				{Field: "baseSalaire", Message: "is required when the employee has no active contract"},
			}
		}
	default:
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to resolve active contract: %w", err)
	}

	baseSalary := decimal.Zero
	if req.BaseSalary != nil {
		baseSalary = *req.BaseSalary
	} else {
		baseSalary = activeContract.BaseSalary
	}

	existing, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, req.EmployeeID, month, year)
	switch {
	case err == nil:
		if !replace {
			return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyExists
		}
		if existing.Status == payroll.PayrollStatusFinal {
			return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordFinalized
		}
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		// First computation for this period.
	default:
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to check existing payroll record: %w", err)
	}

	record, err := compute(req, baseSalary, activeContract, cfg)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	record.PeriodMonth = month
	record.PeriodYear = year
	record.PeriodLabel = label

	var created payroll.PayrollRecord
	if replace && existing.ID != "" {
		created, err = s.payrollRepo.ReplacePayrollRecord(ctx, existing.ID, record)
	} else {
		created, err = s.payrollRepo.CreatePayrollRecord(ctx, record)
	}
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapToRecordResponse(created, true), nil
}

// compute runs the pure gross-to-net pipeline for one employee and returns
// the record ready to persist. Nothing is written here; a failure aborts with
// no partial result.
func compute(req payroll.GeneratePayrollRequest, baseSalary decimal.Decimal, ct *contract.Contract, cfg taxconfig.Snapshot) (payroll.PayrollRecord, error) {
	if baseSalary.IsNegative() {
		return payroll.PayrollRecord{}, fmt.Errorf("%w: negative base salary %s", payroll.ErrInvalidAmount, baseSalary)
	}

	bonuses := valueOrZero(req.Bonuses)
	allowances := valueOrZero(req.Allowances)
	otherDeductions := valueOrZero(req.OtherDeduction)

	// Gross composition comes first: every downstream base derives from
	// gross or from the floored base salary.
	flooredBase := FloorSalary(baseSalary, cfg)
	overtime, hourlyRate := OvertimeAmount(baseSalary, req.Overtime, req.OvertimeDetail, cfg)
	gross := ComposeGross(flooredBase, overtime, bonuses, allowances)

	atRate, atSource := ResolveWorkAccidentRate(req.WorkAccidentRate, ct, cfg)

	employeeRetirement, employerRetirement := RetirementContributions(gross, cfg)
	family := FamilyContribution(gross, cfg)
	workAccident := WorkAccidentContribution(gross, atRate, cfg)
	health := HealthContribution(gross, cfg)
	training := TrainingFundContribution(gross, cfg)

	housingEmployer := gross.Mul(cfg.HousingLevyRate).Round(2)
	employmentEmployer := gross.Mul(cfg.EmploymentLevyRate).Round(2)
	housingEmployee := gross.Mul(cfg.HousingLevyEmployeeRate).Round(2)
	employmentEmployee := gross.Mul(cfg.EmploymentLevyEmployeeRate).Round(2)

	totalEmployee := employeeRetirement.Add(housingEmployee).Add(employmentEmployee)
	totalEmployer := employerRetirement.Add(family).Add(workAccident).Add(health).Add(training).
		Add(housingEmployer).Add(employmentEmployer)

	taxable := gross.Sub(totalEmployee)
	taxableAfterAbatement := taxable.Mul(decimal.NewFromInt(1).Sub(cfg.AbatementRate)).Round(2)
	if taxableAfterAbatement.IsNegative() {
		taxableAfterAbatement = decimal.Zero
	}

	parts := 1
	if req.FiscalParts != nil {
		parts = *req.FiscalParts
	}
	parts = ClampFiscalParts(parts)

	tax, taxPerPart, taxablePerPart, matched := QuotientTax(taxableAfterAbatement, parts, cfg.Brackets)

	lineTotal := decimal.Zero
	for _, d := range req.Deductions {
		lineTotal = lineTotal.Add(d.Amount)
	}

	net := gross.Sub(totalEmployee).Sub(tax).Sub(otherDeductions).Sub(lineTotal)

	currency := cfg.Currency
	if req.Currency != nil && *req.Currency != "" {
		currency = *req.Currency
	}

	record := payroll.PayrollRecord{
		EmployeeID: req.EmployeeID,
		Currency:   currency,

		BaseSalary:      baseSalary,
		OvertimeAmount:  overtime,
		OvertimeDetail:  req.OvertimeDetail,
		Bonuses:         bonuses,
		Allowances:      allowances,
		OtherDeductions: otherDeductions,
		DeductionLines:  req.Deductions,
		FiscalParts:     parts,

		GrossPay: gross,

		EmployeeRetirement:     employeeRetirement,
		HousingLevyEmployee:    housingEmployee,
		EmploymentLevyEmployee: employmentEmployee,

		EmployerRetirement:     employerRetirement,
		FamilyContribution:     family,
		WorkAccident:           workAccident,
		HealthContribution:     health,
		TrainingFund:           training,
		HousingLevyEmployer:    housingEmployer,
		EmploymentLevyEmployer: employmentEmployer,

		TotalEmployeeContributions: totalEmployee,
		TotalEmployerCharges:       totalEmployer,

		TaxableIncome:         taxable,
		TaxableAfterAbatement: taxableAfterAbatement,
		IncomeTax:             tax,
		NetPay:                net,

		Status:     payroll.PayrollStatusDraft,
		Incomplete: !matched,
	}

	if ct != nil {
		record.ContractID = &ct.ID
	}

	record.Breakdown = payroll.Breakdown{
		Configuration: cfg,

		DeclaredBaseSalary: baseSalary,
		FlooredBaseSalary:  flooredBase,
		HourlyRate:         hourlyRate,
		OvertimeAmount:     overtime,
		Bonuses:            bonuses,
		Allowances:         allowances,
		GrossPay:           gross,

		RetirementBase: ContributionBase(gross, cfg, &cfg.RetirementCeiling),
		FamilyBase:     ContributionBase(gross, cfg, &cfg.FamilyCeiling),
		HealthBase:     ContributionBase(gross, cfg, cfg.HealthCeiling),
		TrainingBase:   FloorSalary(gross, cfg),

		WorkAccidentRate:       atRate,
		WorkAccidentRateSource: atSource,

		EmployeeRetirement:     employeeRetirement,
		HousingLevyEmployee:    housingEmployee,
		EmploymentLevyEmployee: employmentEmployee,

		EmployerRetirement:     employerRetirement,
		FamilyContribution:     family,
		WorkAccident:           workAccident,
		HealthContribution:     health,
		TrainingFund:           training,
		HousingLevyEmployer:    housingEmployer,
		EmploymentLevyEmployer: employmentEmployer,

		TotalEmployeeContributions: totalEmployee,
		TotalEmployerCharges:       totalEmployer,

		TaxableIncome:         taxable,
		TaxableAfterAbatement: taxableAfterAbatement,
		FiscalParts:           parts,
		TaxablePerPart:        taxablePerPart,
		TaxPerPart:            taxPerPart,
		IncomeTax:             tax,

		OtherDeductions:    otherDeductions,
		DeductionLineTotal: lineTotal,
		NetPay:             net,
	}

	return record, nil
}

func valueOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

// ========== READS ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return mapToRecordResponse(record, true), nil
}

func (s *PayrollServiceImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, employeeID, month, year)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return mapToRecordResponse(record, true), nil
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	records, totalCount, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r, false))
	}

	return payroll.ListPayrollRecordResponse{
		Data:       result,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ========== MUTATIONS ==========

func (s *PayrollServiceImpl) Update(ctx context.Context, req payroll.UpdatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if record.Status == payroll.PayrollStatusFinal {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordFinalized
	}

	if err := s.payrollRepo.UpdatePayrollRecord(ctx, req); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return s.GetRecord(ctx, req.ID)
}

func (s *PayrollServiceImpl) Finalize(ctx context.Context, req payroll.FinalizePayrollRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	finalizedBy := ""
	if userID := userIDFromContext(ctx); userID != nil {
		finalizedBy = *userID
	}

	return s.payrollRepo.FinalizePayrollRecords(ctx, req.RecordIDs, finalizedBy)
}

func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status == payroll.PayrollStatusFinal {
		return payroll.ErrCannotDeleteFinalRecord
	}

	return s.payrollRepo.DeletePayrollRecord(ctx, id)
}

func (s *PayrollServiceImpl) Summary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	return s.payrollRepo.GetPayrollSummary(ctx, month, year)
}

// ========== HELPERS ==========

func mapToRecordResponse(r payroll.PayrollRecord, withDetails bool) payroll.PayrollRecordResponse {
	resp := payroll.PayrollRecordResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		PeriodLabel: r.PeriodLabel,
		Month:       r.PeriodMonth,
		Year:        r.PeriodYear,
		Currency:    r.Currency,

		BaseSalary:     r.BaseSalary,
		OvertimeAmount: r.OvertimeAmount,
		OvertimeDetail: r.OvertimeDetail,
		Bonuses:        r.Bonuses,
		Allowances:     r.Allowances,
		OtherDeduction: r.OtherDeductions,
		Deductions:     r.DeductionLines,
		FiscalParts:    r.FiscalParts,

		GrossPay: r.GrossPay,
		EmployeeContributions: payroll.EmployeeContributionsResponse{
			Retirement:     r.EmployeeRetirement,
			HousingLevy:    r.HousingLevyEmployee,
			EmploymentLevy: r.EmploymentLevyEmployee,
			Total:          r.TotalEmployeeContributions,
		},
		EmployerContributions: payroll.EmployerContributionsResponse{
			Retirement:     r.EmployerRetirement,
			Family:         r.FamilyContribution,
			WorkAccident:   r.WorkAccident,
			Health:         r.HealthContribution,
			TrainingFund:   r.TrainingFund,
			HousingLevy:    r.HousingLevyEmployer,
			EmploymentLevy: r.EmploymentLevyEmployer,
			Total:          r.TotalEmployerCharges,
		},
		TaxableIncome:         r.TaxableIncome,
		TaxableAfterAbatement: r.TaxableAfterAbatement,
		IncomeTax:             r.IncomeTax,
		NetPay:                r.NetPay,

		Status:     string(r.Status),
		Incomplete: r.Incomplete,
		Notes:      r.Notes,
	}

	if withDetails {
		breakdown := r.Breakdown
		resp.Details = &breakdown
	}
	return resp
}
