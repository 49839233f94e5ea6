package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
)

// HourlyRate derives the hourly rate used for overtime valuation from the
// floored base salary and the standard monthly hour count.
func HourlyRate(baseSalary decimal.Decimal, cfg taxconfig.Snapshot) decimal.Decimal {
	return FloorSalary(baseSalary, cfg).Div(cfg.StandardMonthlyHours)
}

// OvertimeAmount converts declared overtime into money. When slices are
// supplied their sum is authoritative and overrides any directly supplied
// amount; otherwise the direct amount is used as-is.
func OvertimeAmount(baseSalary decimal.Decimal, direct *decimal.Decimal, slices []payroll.OvertimeSlice, cfg taxconfig.Snapshot) (amount decimal.Decimal, hourlyRate *decimal.Decimal) {
	if len(slices) > 0 {
		rate := HourlyRate(baseSalary, cfg)
		total := decimal.Zero
		for _, s := range slices {
			total = total.Add(s.Hours.Mul(rate).Mul(s.Multiplier))
		}
		total = total.Round(2)
		return total, &rate
	}
	if direct != nil {
		return direct.Round(2), nil
	}
	return decimal.Zero, nil
}

// ComposeGross assembles gross pay from the floored base salary, overtime,
// bonuses and allowances. Every downstream base derives from this composition
// or from the floored base, never from the raw declared salary.
func ComposeGross(flooredBase, overtime, bonuses, allowances decimal.Decimal) decimal.Decimal {
	return flooredBase.Add(overtime).Add(bonuses).Add(allowances)
}
