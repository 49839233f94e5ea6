package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
)

func TestClampFiscalParts(t *testing.T) {
	tests := []struct {
		name     string
		parts    int
		expected int
	}{
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -2, 1},
		{"one passes", 1, 1},
		{"three passes", 3, 3},
		{"five passes", 5, 5},
		{"six clamps to five", 6, 5},
		{"large clamps to five", 40, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampFiscalParts(tt.parts))
		})
	}
}

func TestEvaluateProgressive(t *testing.T) {
	brackets := taxconfig.DefaultBrackets()

	tests := []struct {
		name    string
		taxable string
		tax     string
	}{
		{"zero owes nothing", "0", "0"},
		{"negative owes nothing", "-100", "0"},
		{"inside exempt bracket", "50000", "0"},
		{"exempt upper bound", "62000", "0"},
		{"second bracket", "100000", "3800"},
		{"third bracket", "383200", "35780"},
		{"fourth bracket lower bound plus one", "429001", "42650.25"},
		{"top bracket", "1500000", "418700"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, matched := EvaluateProgressive(d(tt.taxable), brackets)
			assert.True(t, matched)
			assert.True(t, tax.Equal(d(tt.tax)), "got %s, want %s", tax, tt.tax)
		})
	}

	t.Run("gap in the table leaves income unmatched", func(t *testing.T) {
		gapped := []taxconfig.TaxBracket{
			{LowerBound: d("100"), UpperBound: &[]decimal.Decimal{d("200")}[0], Rate: d("0.10")},
		}
		tax, matched := EvaluateProgressive(d("1000"), gapped)
		assert.False(t, matched)
		assert.True(t, tax.IsZero())
	})
}

// The default table carries cumulative fixed deductions, so tax owed must not
// jump when taxable income crosses a bracket boundary.
func TestEvaluateProgressive_ContinuityAtBoundaries(t *testing.T) {
	brackets := taxconfig.DefaultBrackets()
	cent := d("0.01")

	for _, b := range brackets {
		if b.UpperBound == nil {
			continue
		}
		below, matchedBelow := EvaluateProgressive(*b.UpperBound, brackets)
		above, matchedAbove := EvaluateProgressive(b.UpperBound.Add(cent), brackets)
		assert.True(t, matchedBelow)
		assert.True(t, matchedAbove)
		assert.True(t, above.Sub(below).Abs().LessThanOrEqual(cent),
			"discontinuity at %s: below=%s above=%s", b.UpperBound, below, above)
	}
}

func TestEvaluateProgressive_Monotonic(t *testing.T) {
	brackets := taxconfig.DefaultBrackets()

	prev := decimal.Zero
	for income := decimal.Zero; income.LessThanOrEqual(d("1200000")); income = income.Add(d("10000")) {
		tax, matched := EvaluateProgressive(income, brackets)
		assert.True(t, matched)
		assert.True(t, tax.GreaterThanOrEqual(prev),
			"tax decreased at income %s: %s < %s", income, tax, prev)
		prev = tax
	}
}

func TestQuotientTax(t *testing.T) {
	brackets := taxconfig.DefaultBrackets()

	t.Run("single part matches direct evaluation", func(t *testing.T) {
		total, perPart, _, matched := QuotientTax(d("383200"), 1, brackets)
		assert.True(t, matched)
		assert.True(t, total.Equal(d("35780")), "got %s", total)
		assert.True(t, perPart.Equal(total))
	})

	t.Run("two parts split the taxable income", func(t *testing.T) {
		total, perPart, taxablePerPart, matched := QuotientTax(d("383200"), 2, brackets)
		assert.True(t, matched)
		assert.True(t, taxablePerPart.Equal(d("191600")), "got %s", taxablePerPart)
		// (191600 - 62000) * 0.10
		assert.True(t, perPart.Equal(d("12960")), "got %s", perPart)
		assert.True(t, total.Equal(d("25920")), "got %s", total)
	})

	t.Run("splitting never increases the total tax", func(t *testing.T) {
		single, _, _, _ := QuotientTax(d("800000"), 1, brackets)
		split, _, _, _ := QuotientTax(d("800000"), 3, brackets)
		assert.True(t, split.LessThanOrEqual(single), "split=%s single=%s", split, single)
	})

	t.Run("parts beyond the maximum are clamped", func(t *testing.T) {
		atMax, _, _, _ := QuotientTax(d("900000"), 5, brackets)
		beyond, _, _, _ := QuotientTax(d("900000"), 6, brackets)
		assert.True(t, atMax.Equal(beyond))
	})
}
