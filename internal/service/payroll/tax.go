package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
)

const (
	minFiscalParts = 1
	maxFiscalParts = 5
)

// ClampFiscalParts clamps the family-quotient divisor to [1, 5]. Out-of-range
// values are clamped rather than rejected so one bad input cannot sink a
// whole payroll run.
func ClampFiscalParts(parts int) int {
	if parts < minFiscalParts {
		return minFiscalParts
	}
	if parts > maxFiscalParts {
		return maxFiscalParts
	}
	return parts
}

// EvaluateProgressive applies the ordered bracket table to a taxable income.
// The matching bracket is the one whose (lower, upper] interval contains the
// income; the result is the bracket's fixed deduction plus the marginal rate
// applied to the excess over the lower bound.
//
// A contiguous table always matches; should none match anyway, the function
// returns zero with matched=false and the caller flags the record incomplete
// instead of failing the pipeline.
func EvaluateProgressive(taxable decimal.Decimal, brackets []taxconfig.TaxBracket) (decimal.Decimal, bool) {
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, true
	}

	for _, b := range brackets {
		if b.Contains(taxable) {
			tax := b.FixedDeduction.Add(taxable.Sub(b.LowerBound).Mul(b.Rate))
			return tax.Round(2), true
		}
	}
	return decimal.Zero, false
}

// QuotientTax applies family-quotient splitting: the abated taxable income is
// divided across the fiscal parts, taxed per part, and the per-part tax is
// scaled back up.
func QuotientTax(taxableAfterAbatement decimal.Decimal, parts int, brackets []taxconfig.TaxBracket) (total, perPart, taxablePerPart decimal.Decimal, matched bool) {
	parts = ClampFiscalParts(parts)
	divisor := decimal.NewFromInt(int64(parts))

	taxablePerPart = taxableAfterAbatement.Div(divisor)
	perPart, matched = EvaluateProgressive(taxablePerPart, brackets)
	total = perPart.Mul(divisor).Round(2)
	return total, perPart, taxablePerPart, matched
}
