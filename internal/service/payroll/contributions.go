package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
)

// Contribution bases are always computed on the salary raised to the
// statutory floor, then capped at the ceiling of the contribution in
// question. These helpers are pure; every monetary result is rounded to two
// decimal places so that stored breakdowns add up exactly.

// FloorSalary raises a declared salary to the statutory minimum wage.
func FloorSalary(salary decimal.Decimal, cfg taxconfig.Snapshot) decimal.Decimal {
	if salary.LessThan(cfg.MinimumWage) {
		return cfg.MinimumWage
	}
	return salary
}

// ContributionBase clamps the floored salary to a ceiling. A nil ceiling
// leaves the base uncapped.
func ContributionBase(salary decimal.Decimal, cfg taxconfig.Snapshot, ceiling *decimal.Decimal) decimal.Decimal {
	base := FloorSalary(salary, cfg)
	if ceiling != nil && base.GreaterThan(*ceiling) {
		return *ceiling
	}
	return base
}

// RetirementContributions returns the employee and employer retirement shares
// computed on the retirement-capped base.
func RetirementContributions(salary decimal.Decimal, cfg taxconfig.Snapshot) (employee, employer decimal.Decimal) {
	base := ContributionBase(salary, cfg, &cfg.RetirementCeiling)
	employee = base.Mul(cfg.EmployeeRetirementRate).Round(2)
	employer = base.Mul(cfg.EmployerRetirementRate).Round(2)
	return employee, employer
}

// FamilyContribution computes the family-allowance contribution on the
// family-capped base.
func FamilyContribution(salary decimal.Decimal, cfg taxconfig.Snapshot) decimal.Decimal {
	base := ContributionBase(salary, cfg, &cfg.FamilyCeiling)
	return base.Mul(cfg.FamilyRate).Round(2)
}

// WorkAccidentContribution computes the work-accident contribution on the
// family-capped base, at the rate resolved through the precedence chain.
func WorkAccidentContribution(salary decimal.Decimal, rate decimal.Decimal, cfg taxconfig.Snapshot) decimal.Decimal {
	base := ContributionBase(salary, cfg, &cfg.FamilyCeiling)
	return base.Mul(rate).Round(2)
}

// HealthContribution computes the employer health contribution. The health
// ceiling is optional; when absent the base is only floored.
func HealthContribution(salary decimal.Decimal, cfg taxconfig.Snapshot) decimal.Decimal {
	base := ContributionBase(salary, cfg, cfg.HealthCeiling)
	return base.Mul(cfg.HealthEmployerRate).Round(2)
}

// TrainingFundContribution computes the professional-training contribution on
// the floored, uncapped base.
func TrainingFundContribution(salary decimal.Decimal, cfg taxconfig.Snapshot) decimal.Decimal {
	return FloorSalary(salary, cfg).Mul(cfg.TrainingFundRate).Round(2)
}
