package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
	PayrollStatusFinal PayrollStatus = "final"
)

// OvertimeSlice is one declared overtime block: a number of hours paid at a
// multiplier of the derived hourly rate.
type OvertimeSlice struct {
	Hours      decimal.Decimal `json:"hours"`
	Multiplier decimal.Decimal `json:"rate"`
}

// DeductionLine is one ad-hoc deduction subtracted from net pay.
type DeductionLine struct {
	Label  string          `json:"label,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// RateSource names which rung of the precedence chain produced the effective
// work-accident rate.
type RateSource string

const (
	RateSourceRequest  RateSource = "request"
	RateSourceContract RateSource = "contract"
	RateSourceRiskBand RateSource = "risk_band"
	RateSourceDefault  RateSource = "default"
)

// Breakdown captures every intermediate value of one computation together
// with the configuration snapshot it used, so the stored result can be
// audited and re-verified without re-reading the configuration tables.
type Breakdown struct {
	Configuration taxconfig.Snapshot `json:"configuration"`

	DeclaredBaseSalary decimal.Decimal  `json:"declared_base_salary"`
	FlooredBaseSalary  decimal.Decimal  `json:"floored_base_salary"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	OvertimeAmount     decimal.Decimal  `json:"overtime_amount"`
	Bonuses            decimal.Decimal  `json:"bonuses"`
	Allowances         decimal.Decimal  `json:"allowances"`
	GrossPay           decimal.Decimal  `json:"gross_pay"`

	RetirementBase decimal.Decimal `json:"retirement_base"`
	FamilyBase     decimal.Decimal `json:"family_base"`
	HealthBase     decimal.Decimal `json:"health_base"`
	TrainingBase   decimal.Decimal `json:"training_base"`

	WorkAccidentRate       decimal.Decimal `json:"work_accident_rate"`
	WorkAccidentRateSource RateSource      `json:"work_accident_rate_source"`

	EmployeeRetirement     decimal.Decimal `json:"employee_retirement"`
	HousingLevyEmployee    decimal.Decimal `json:"housing_levy_employee"`
	EmploymentLevyEmployee decimal.Decimal `json:"employment_levy_employee"`

	EmployerRetirement     decimal.Decimal `json:"employer_retirement"`
	FamilyContribution     decimal.Decimal `json:"family_contribution"`
	WorkAccident           decimal.Decimal `json:"work_accident_contribution"`
	HealthContribution     decimal.Decimal `json:"health_contribution"`
	TrainingFund           decimal.Decimal `json:"training_fund_contribution"`
	HousingLevyEmployer    decimal.Decimal `json:"housing_levy_employer"`
	EmploymentLevyEmployer decimal.Decimal `json:"employment_levy_employer"`

	TotalEmployeeContributions decimal.Decimal `json:"total_employee_contributions"`
	TotalEmployerCharges       decimal.Decimal `json:"total_employer_charges"`

	TaxableIncome         decimal.Decimal `json:"taxable_income"`
	TaxableAfterAbatement decimal.Decimal `json:"taxable_after_abatement"`
	FiscalParts           int             `json:"fiscal_parts"`
	TaxablePerPart        decimal.Decimal `json:"taxable_per_part"`
	TaxPerPart            decimal.Decimal `json:"tax_per_part"`
	IncomeTax             decimal.Decimal `json:"income_tax"`

	OtherDeductions    decimal.Decimal `json:"other_deductions"`
	DeductionLineTotal decimal.Decimal `json:"deduction_line_total"`
	NetPay             decimal.Decimal `json:"net_pay"`
}

// PayrollRecord is the persisted outcome of one gross-to-net computation for
// one employee and one period. It is written exactly once per computation;
// the partial-update path never recomputes it, and regeneration writes a
// fresh breakdown.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	ContractID  *string
	PeriodMonth int
	PeriodYear  int
	PeriodLabel string
	Currency    string

	BaseSalary      decimal.Decimal
	OvertimeAmount  decimal.Decimal
	OvertimeDetail  []OvertimeSlice
	Bonuses         decimal.Decimal
	Allowances      decimal.Decimal
	OtherDeductions decimal.Decimal
	DeductionLines  []DeductionLine
	FiscalParts     int

	GrossPay decimal.Decimal

	EmployeeRetirement     decimal.Decimal
	HousingLevyEmployee    decimal.Decimal
	EmploymentLevyEmployee decimal.Decimal

	EmployerRetirement     decimal.Decimal
	FamilyContribution     decimal.Decimal
	WorkAccident           decimal.Decimal
	HealthContribution     decimal.Decimal
	TrainingFund           decimal.Decimal
	HousingLevyEmployer    decimal.Decimal
	EmploymentLevyEmployer decimal.Decimal

	TotalEmployeeContributions decimal.Decimal
	TotalEmployerCharges       decimal.Decimal

	TaxableIncome         decimal.Decimal
	TaxableAfterAbatement decimal.Decimal
	IncomeTax             decimal.Decimal
	NetPay                decimal.Decimal

	Status PayrollStatus

	// Incomplete marks a record whose tax evaluation found no matching
	// bracket. The record is still persisted with zero tax so the period
	// total stays consistent.
	Incomplete bool

	Breakdown Breakdown

	Notes       *string
	FinalizedAt *time.Time
	FinalizedBy *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
