package taxconfig

import "context"

// ConfigRepository reads the configuration stores. All four reads happen once
// per process, on first resolution; the engine never writes these tables.
type ConfigRepository interface {
	ListConstants(ctx context.Context) ([]Constant, error)
	ListTaxSettings(ctx context.Context) ([]TaxSetting, error)
	ListRiskBands(ctx context.Context) ([]RiskBand, error)
	ListBrackets(ctx context.Context) ([]TaxBracket, error)
}
