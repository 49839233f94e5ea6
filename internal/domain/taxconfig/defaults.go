package taxconfig

import "github.com/shopspring/decimal"

// ConstantKey is the closed set of keys recognized in the payroll_constants
// table. An unrecognized key is a configuration error, never silently skipped.
type ConstantKey string

const (
	KeyMinimumWage                ConstantKey = "MINIMUM_WAGE"
	KeyRetirementCeiling          ConstantKey = "RETIREMENT_CEILING"
	KeyFamilyCeiling              ConstantKey = "FAMILY_CEILING"
	KeyHealthCeiling              ConstantKey = "HEALTH_CEILING"
	KeyEmployeeRetirementRate     ConstantKey = "EMPLOYEE_RETIREMENT_RATE"
	KeyEmployerRetirementRate     ConstantKey = "EMPLOYER_RETIREMENT_RATE"
	KeyFamilyRate                 ConstantKey = "FAMILY_RATE"
	KeyWorkAccidentRate           ConstantKey = "WORK_ACCIDENT_RATE"
	KeyHealthEmployerRate         ConstantKey = "HEALTH_EMPLOYER_RATE"
	KeyTrainingFundRate           ConstantKey = "TRAINING_FUND_RATE"
	KeyHousingLevyRate            ConstantKey = "HOUSING_LEVY_RATE"
	KeyEmploymentLevyRate         ConstantKey = "EMPLOYMENT_LEVY_RATE"
	KeyHousingLevyEmployeeRate    ConstantKey = "HOUSING_LEVY_EMPLOYEE_RATE"
	KeyEmploymentLevyEmployeeRate ConstantKey = "EMPLOYMENT_LEVY_EMPLOYEE_RATE"
	KeyAbatementRate              ConstantKey = "ABATEMENT_RATE"
	KeyStandardMonthlyHours       ConstantKey = "HOURS_BASE"
	KeyCurrency                   ConstantKey = "CURRENCY"
)

// Statutory defaults. Every value can be overridden through the constants or
// tax-settings tables; these apply when the tables are empty.
var (
	DefaultMinimumWage       = decimal.NewFromInt(41875)
	DefaultRetirementCeiling = decimal.NewFromInt(750000)
	DefaultFamilyCeiling     = decimal.NewFromInt(750000)

	DefaultEmployeeRetirementRate = decimal.RequireFromString("0.042")
	DefaultEmployerRetirementRate = decimal.RequireFromString("0.042")
	DefaultFamilyRate             = decimal.RequireFromString("0.07")
	DefaultWorkAccidentRate       = decimal.RequireFromString("0.025")
	DefaultHealthEmployerRate     = decimal.RequireFromString("0.02")
	DefaultTrainingFundRate       = decimal.RequireFromString("0.01")
	DefaultHousingLevyRate        = decimal.RequireFromString("0.015")
	DefaultEmploymentLevyRate     = decimal.RequireFromString("0.01")

	DefaultAbatementRate        = decimal.RequireFromString("0.20")
	DefaultStandardMonthlyHours = decimal.NewFromInt(173)
)

const DefaultCurrency = "XAF"

// DefaultSnapshot returns the built-in statutory configuration, including the
// default six-bracket monthly tax table.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		MinimumWage:       DefaultMinimumWage,
		RetirementCeiling: DefaultRetirementCeiling,
		FamilyCeiling:     DefaultFamilyCeiling,
		HealthCeiling:     nil,

		EmployeeRetirementRate:  DefaultEmployeeRetirementRate,
		EmployerRetirementRate:  DefaultEmployerRetirementRate,
		FamilyRate:              DefaultFamilyRate,
		DefaultWorkAccidentRate: DefaultWorkAccidentRate,
		HealthEmployerRate:      DefaultHealthEmployerRate,
		TrainingFundRate:        DefaultTrainingFundRate,

		HousingLevyRate:            DefaultHousingLevyRate,
		EmploymentLevyRate:         DefaultEmploymentLevyRate,
		HousingLevyEmployeeRate:    decimal.Zero,
		EmploymentLevyEmployeeRate: decimal.Zero,

		AbatementRate:        DefaultAbatementRate,
		StandardMonthlyHours: DefaultStandardMonthlyHours,
		Currency:             DefaultCurrency,

		Brackets: DefaultBrackets(),
	}
}

// DefaultBrackets returns the built-in monthly tax table. Fixed deductions are
// the cumulative tax at each lower bound, so the schedule is continuous at
// every boundary.
func DefaultBrackets() []TaxBracket {
	bound := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return []TaxBracket{
		{LowerBound: decimal.Zero, UpperBound: bound(62000), Rate: decimal.Zero, FixedDeduction: decimal.Zero},
		{LowerBound: decimal.NewFromInt(62000), UpperBound: bound(310000), Rate: decimal.RequireFromString("0.10"), FixedDeduction: decimal.Zero},
		{LowerBound: decimal.NewFromInt(310000), UpperBound: bound(429000), Rate: decimal.RequireFromString("0.15"), FixedDeduction: decimal.NewFromInt(24800)},
		{LowerBound: decimal.NewFromInt(429000), UpperBound: bound(667000), Rate: decimal.RequireFromString("0.25"), FixedDeduction: decimal.NewFromInt(42650)},
		{LowerBound: decimal.NewFromInt(667000), UpperBound: bound(1000000), Rate: decimal.RequireFromString("0.35"), FixedDeduction: decimal.NewFromInt(102150)},
		{LowerBound: decimal.NewFromInt(1000000), UpperBound: nil, Rate: decimal.RequireFromString("0.40"), FixedDeduction: decimal.NewFromInt(218700)},
	}
}
