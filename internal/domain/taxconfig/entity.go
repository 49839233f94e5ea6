package taxconfig

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the fully resolved statutory configuration the payroll engine
// computes against. It is built once by overlaying built-in defaults, the
// payroll_constants table and the payroll_tax_settings table, and is treated
// as immutable afterwards: callers receive it by value and the breakdown of
// every payroll record embeds the snapshot it was computed with.
type Snapshot struct {
	MinimumWage       decimal.Decimal  `json:"minimum_wage"`
	RetirementCeiling decimal.Decimal  `json:"retirement_ceiling"`
	FamilyCeiling     decimal.Decimal  `json:"family_ceiling"`
	HealthCeiling     *decimal.Decimal `json:"health_ceiling,omitempty"` // nil = uncapped

	EmployeeRetirementRate  decimal.Decimal `json:"employee_retirement_rate"`
	EmployerRetirementRate  decimal.Decimal `json:"employer_retirement_rate"`
	FamilyRate              decimal.Decimal `json:"family_rate"`
	DefaultWorkAccidentRate decimal.Decimal `json:"default_work_accident_rate"`
	HealthEmployerRate      decimal.Decimal `json:"health_employer_rate"`
	TrainingFundRate        decimal.Decimal `json:"training_fund_rate"`

	// Flat levies applied to gross pay. The employer side carries the
	// statutory defaults; the employee side defaults to zero and is only
	// charged when a deployment configures it explicitly.
	HousingLevyRate            decimal.Decimal `json:"housing_levy_rate"`
	EmploymentLevyRate         decimal.Decimal `json:"employment_levy_rate"`
	HousingLevyEmployeeRate    decimal.Decimal `json:"housing_levy_employee_rate"`
	EmploymentLevyEmployeeRate decimal.Decimal `json:"employment_levy_employee_rate"`

	AbatementRate        decimal.Decimal `json:"abatement_rate"`
	StandardMonthlyHours decimal.Decimal `json:"standard_monthly_hours"`
	Currency             string          `json:"currency"`

	Brackets  []TaxBracket `json:"brackets"`
	RiskBands []RiskBand   `json:"risk_bands,omitempty"`
}

// TaxBracket is one row of the progressive income tax table. The interval is
// (LowerBound, UpperBound]; a nil UpperBound marks the unbounded top bracket.
// FixedDeduction is the cumulative tax owed at LowerBound, which keeps the
// table continuous across boundaries.
type TaxBracket struct {
	LowerBound     decimal.Decimal  `json:"lower_bound"`
	UpperBound     *decimal.Decimal `json:"upper_bound,omitempty"`
	Rate           decimal.Decimal  `json:"rate"`
	FixedDeduction decimal.Decimal  `json:"fixed_deduction"`
}

// Contains reports whether taxable falls inside the bracket's (lower, upper]
// interval.
func (b TaxBracket) Contains(taxable decimal.Decimal) bool {
	if taxable.LessThanOrEqual(b.LowerBound) {
		return false
	}
	if b.UpperBound == nil {
		return true
	}
	return taxable.LessThanOrEqual(*b.UpperBound)
}

// RiskBand maps a department label to its occupational work-accident rate.
type RiskBand struct {
	ID               string          `json:"id,omitempty"`
	Department       string          `json:"department"`
	WorkAccidentRate decimal.Decimal `json:"work_accident_rate"`
}

// Constant is one row of the key/value constants table. Values are stored as
// text and parsed against the closed ConstantKey set at resolution time.
type Constant struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// ContributionType identifies a typed tax-settings row.
type ContributionType string

const (
	ContributionRetirement   ContributionType = "retirement"
	ContributionFamily       ContributionType = "family"
	ContributionWorkAccident ContributionType = "work_accident"
	ContributionHealth       ContributionType = "health"
	ContributionTraining     ContributionType = "training"
)

// TaxSetting overrides the rates (and optionally the ceiling) of one
// contribution type. Nil fields leave the current snapshot value untouched.
type TaxSetting struct {
	ID           string
	Type         ContributionType
	EmployeeRate *decimal.Decimal
	EmployerRate *decimal.Decimal
	Ceiling      *decimal.Decimal
	UpdatedAt    time.Time
}
