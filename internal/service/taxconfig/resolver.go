package taxconfig

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
)

// Resolver builds the statutory configuration snapshot by overlaying built-in
// defaults, the constants table and the tax-settings table. The first
// successful resolution is cached for the process lifetime; a restart (or an
// explicit Invalidate, used by tests) is required to pick up table changes.
type Resolver struct {
	repo taxconfig.ConfigRepository

	mu       sync.RWMutex
	snapshot *taxconfig.Snapshot
}

func NewResolver(repo taxconfig.ConfigRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the cached snapshot, loading it from the configuration
// stores on first call. A failed load is not cached.
func (r *Resolver) Resolve(ctx context.Context) (taxconfig.Snapshot, error) {
	r.mu.RLock()
	if r.snapshot != nil {
		s := *r.snapshot
		r.mu.RUnlock()
		return s, nil
	}
	r.mu.RUnlock()

	s, err := r.load(ctx)
	if err != nil {
		return taxconfig.Snapshot{}, err
	}

	r.mu.Lock()
	r.snapshot = &s
	r.mu.Unlock()
	return s, nil
}

// Invalidate drops the cached snapshot so the next Resolve re-reads the
// configuration stores.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.snapshot = nil
	r.mu.Unlock()
}

func (r *Resolver) load(ctx context.Context) (taxconfig.Snapshot, error) {
	s := taxconfig.DefaultSnapshot()

	constants, err := r.repo.ListConstants(ctx)
	if err != nil {
		return taxconfig.Snapshot{}, fmt.Errorf("%w: constants: %v", taxconfig.ErrConfigurationUnavailable, err)
	}
	for _, c := range constants {
		if err := applyConstant(&s, c); err != nil {
			return taxconfig.Snapshot{}, err
		}
	}

	settings, err := r.repo.ListTaxSettings(ctx)
	if err != nil {
		return taxconfig.Snapshot{}, fmt.Errorf("%w: tax settings: %v", taxconfig.ErrConfigurationUnavailable, err)
	}
	for _, ts := range settings {
		if err := applyTaxSetting(&s, ts); err != nil {
			return taxconfig.Snapshot{}, err
		}
	}

	bands, err := r.repo.ListRiskBands(ctx)
	if err != nil {
		return taxconfig.Snapshot{}, fmt.Errorf("%w: risk bands: %v", taxconfig.ErrConfigurationUnavailable, err)
	}
	s.RiskBands = bands

	brackets, err := r.repo.ListBrackets(ctx)
	if err != nil {
		return taxconfig.Snapshot{}, fmt.Errorf("%w: brackets: %v", taxconfig.ErrConfigurationUnavailable, err)
	}
	if len(brackets) > 0 {
		s.Brackets = brackets
	}

	if err := validateSnapshot(s); err != nil {
		return taxconfig.Snapshot{}, err
	}
	return s, nil
}

// applyConstant overrides one snapshot field from a key/value row. The key set
// is closed: an unrecognized key aborts resolution.
func applyConstant(s *taxconfig.Snapshot, c taxconfig.Constant) error {
	if taxconfig.ConstantKey(c.Key) == taxconfig.KeyCurrency {
		if c.Value == "" {
			return fmt.Errorf("%w: constant %s is empty", taxconfig.ErrInvalidConfiguration, c.Key)
		}
		s.Currency = c.Value
		return nil
	}

	v, err := decimal.NewFromString(c.Value)
	if err != nil {
		return fmt.Errorf("%w: constant %s: unparseable value %q", taxconfig.ErrInvalidConfiguration, c.Key, c.Value)
	}

	switch taxconfig.ConstantKey(c.Key) {
	case taxconfig.KeyMinimumWage:
		s.MinimumWage = v
	case taxconfig.KeyRetirementCeiling:
		s.RetirementCeiling = v
	case taxconfig.KeyFamilyCeiling:
		s.FamilyCeiling = v
	case taxconfig.KeyHealthCeiling:
		s.HealthCeiling = &v
	case taxconfig.KeyEmployeeRetirementRate:
		s.EmployeeRetirementRate = v
	case taxconfig.KeyEmployerRetirementRate:
		s.EmployerRetirementRate = v
	case taxconfig.KeyFamilyRate:
		s.FamilyRate = v
	case taxconfig.KeyWorkAccidentRate:
		s.DefaultWorkAccidentRate = v
	case taxconfig.KeyHealthEmployerRate:
		s.HealthEmployerRate = v
	case taxconfig.KeyTrainingFundRate:
		s.TrainingFundRate = v
	case taxconfig.KeyHousingLevyRate:
		s.HousingLevyRate = v
	case taxconfig.KeyEmploymentLevyRate:
		s.EmploymentLevyRate = v
	case taxconfig.KeyHousingLevyEmployeeRate:
		s.HousingLevyEmployeeRate = v
	case taxconfig.KeyEmploymentLevyEmployeeRate:
		s.EmploymentLevyEmployeeRate = v
	case taxconfig.KeyAbatementRate:
		s.AbatementRate = v
	case taxconfig.KeyStandardMonthlyHours:
		s.StandardMonthlyHours = v
	default:
		return fmt.Errorf("%w: %s", taxconfig.ErrUnknownConstantKey, c.Key)
	}
	return nil
}

// applyTaxSetting overrides the rates of one contribution type. A setting may
// carry its own ceiling, which replaces the ceiling of the base it computes on.
func applyTaxSetting(s *taxconfig.Snapshot, ts taxconfig.TaxSetting) error {
	switch ts.Type {
	case taxconfig.ContributionRetirement:
		if ts.EmployeeRate != nil {
			s.EmployeeRetirementRate = *ts.EmployeeRate
		}
		if ts.EmployerRate != nil {
			s.EmployerRetirementRate = *ts.EmployerRate
		}
		if ts.Ceiling != nil {
			s.RetirementCeiling = *ts.Ceiling
		}
	case taxconfig.ContributionFamily:
		if ts.EmployerRate != nil {
			s.FamilyRate = *ts.EmployerRate
		}
		if ts.Ceiling != nil {
			s.FamilyCeiling = *ts.Ceiling
		}
	case taxconfig.ContributionWorkAccident:
		if ts.EmployerRate != nil {
			s.DefaultWorkAccidentRate = *ts.EmployerRate
		}
		if ts.Ceiling != nil {
			s.FamilyCeiling = *ts.Ceiling
		}
	case taxconfig.ContributionHealth:
		if ts.EmployerRate != nil {
			s.HealthEmployerRate = *ts.EmployerRate
		}
		if ts.Ceiling != nil {
			s.HealthCeiling = ts.Ceiling
		}
	case taxconfig.ContributionTraining:
		if ts.EmployerRate != nil {
			s.TrainingFundRate = *ts.EmployerRate
		}
	default:
		return fmt.Errorf("%w: unknown contribution type %q", taxconfig.ErrInvalidConfiguration, ts.Type)
	}
	return nil
}

func validateSnapshot(s taxconfig.Snapshot) error {
	one := decimal.NewFromInt(1)

	rates := map[string]decimal.Decimal{
		"employee_retirement_rate":      s.EmployeeRetirementRate,
		"employer_retirement_rate":      s.EmployerRetirementRate,
		"family_rate":                   s.FamilyRate,
		"default_work_accident_rate":    s.DefaultWorkAccidentRate,
		"health_employer_rate":          s.HealthEmployerRate,
		"training_fund_rate":            s.TrainingFundRate,
		"housing_levy_rate":             s.HousingLevyRate,
		"employment_levy_rate":          s.EmploymentLevyRate,
		"housing_levy_employee_rate":    s.HousingLevyEmployeeRate,
		"employment_levy_employee_rate": s.EmploymentLevyEmployeeRate,
		"abatement_rate":                s.AbatementRate,
	}
	for name, rate := range rates {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return fmt.Errorf("%w: %s %s outside [0,1]", taxconfig.ErrInvalidConfiguration, name, rate)
		}
	}

	if !s.MinimumWage.IsPositive() {
		return fmt.Errorf("%w: minimum wage must be positive", taxconfig.ErrInvalidConfiguration)
	}
	if !s.StandardMonthlyHours.IsPositive() {
		return fmt.Errorf("%w: standard monthly hours must be positive", taxconfig.ErrInvalidConfiguration)
	}

	ceilings := map[string]*decimal.Decimal{
		"retirement_ceiling": &s.RetirementCeiling,
		"family_ceiling":     &s.FamilyCeiling,
		"health_ceiling":     s.HealthCeiling,
	}
	for name, c := range ceilings {
		if c == nil {
			continue
		}
		if !c.IsPositive() {
			return fmt.Errorf("%w: %s must be positive", taxconfig.ErrInvalidConfiguration, name)
		}
		if c.LessThan(s.MinimumWage) {
			return fmt.Errorf("%w: %s %s below minimum wage %s", taxconfig.ErrInvalidConfiguration, name, c, s.MinimumWage)
		}
	}

	return validateBrackets(s.Brackets)
}

// validateBrackets enforces a contiguous, non-overlapping table covering
// [0, inf): the first bracket starts at zero, each bracket starts where the
// previous one ended, and only the last is unbounded.
func validateBrackets(brackets []taxconfig.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: empty bracket table", taxconfig.ErrInvalidConfiguration)
	}

	one := decimal.NewFromInt(1)
	expectedLower := decimal.Zero
	for i, b := range brackets {
		if !b.LowerBound.Equal(expectedLower) {
			return fmt.Errorf("%w: bracket %d starts at %s, want %s", taxconfig.ErrInvalidConfiguration, i, b.LowerBound, expectedLower)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("%w: bracket %d rate %s outside [0,1]", taxconfig.ErrInvalidConfiguration, i, b.Rate)
		}
		if b.FixedDeduction.IsNegative() {
			return fmt.Errorf("%w: bracket %d has negative fixed deduction", taxconfig.ErrInvalidConfiguration, i)
		}
		if b.UpperBound == nil {
			if i != len(brackets)-1 {
				return fmt.Errorf("%w: bracket %d is unbounded but not last", taxconfig.ErrInvalidConfiguration, i)
			}
			return nil
		}
		if b.UpperBound.LessThanOrEqual(b.LowerBound) {
			return fmt.Errorf("%w: bracket %d upper bound %s not above lower bound %s", taxconfig.ErrInvalidConfiguration, i, b.UpperBound, b.LowerBound)
		}
		expectedLower = *b.UpperBound
	}
	return fmt.Errorf("%w: last bracket must be unbounded", taxconfig.ErrInvalidConfiguration)
}
