package payroll

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/contract"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
)

// rateResolver is one rung of the work-accident rate precedence chain.
// Resolvers run in order; the first non-nil value wins.
type rateResolver struct {
	source  payroll.RateSource
	resolve func() *decimal.Decimal
}

// ResolveWorkAccidentRate walks the precedence chain: request override,
// explicit contract rate, risk-band classification of the contract's
// department, configuration default. The default always resolves, so the
// chain cannot come up empty.
func ResolveWorkAccidentRate(
	override *decimal.Decimal,
	ct *contract.Contract,
	cfg taxconfig.Snapshot,
) (decimal.Decimal, payroll.RateSource) {
	chain := []rateResolver{
		{payroll.RateSourceRequest, func() *decimal.Decimal { return override }},
		{payroll.RateSourceContract, func() *decimal.Decimal {
			if ct == nil {
				return nil
			}
			return ct.WorkAccidentRate
		}},
		{payroll.RateSourceRiskBand, func() *decimal.Decimal {
			if ct == nil || ct.Department == nil {
				return nil
			}
			return riskBandRate(*ct.Department, cfg.RiskBands)
		}},
		{payroll.RateSourceDefault, func() *decimal.Decimal { return &cfg.DefaultWorkAccidentRate }},
	}

	for _, r := range chain {
		if rate := r.resolve(); rate != nil {
			return *rate, r.source
		}
	}
	return cfg.DefaultWorkAccidentRate, payroll.RateSourceDefault
}

// riskBandRate looks a department label up in the configured risk bands,
// case-insensitively.
func riskBandRate(department string, bands []taxconfig.RiskBand) *decimal.Decimal {
	for _, b := range bands {
		if strings.EqualFold(b.Department, department) {
			rate := b.WorkAccidentRate
			return &rate
		}
	}
	return nil
}
