package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFloorSalary(t *testing.T) {
	cfg := taxconfig.DefaultSnapshot()

	tests := []struct {
		name     string
		salary   string
		expected string
	}{
		{"below minimum wage is raised", "30000", "41875"},
		{"at minimum wage is unchanged", "41875", "41875"},
		{"above minimum wage is unchanged", "500000", "500000"},
		{"zero is raised", "0", "41875"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FloorSalary(d(tt.salary), cfg)
			assert.True(t, got.Equal(d(tt.expected)), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestContributionBase(t *testing.T) {
	cfg := taxconfig.DefaultSnapshot()

	t.Run("capped at ceiling", func(t *testing.T) {
		got := ContributionBase(d("900000"), cfg, &cfg.RetirementCeiling)
		assert.True(t, got.Equal(d("750000")), "got %s", got)
	})

	t.Run("below ceiling passes through", func(t *testing.T) {
		got := ContributionBase(d("500000"), cfg, &cfg.RetirementCeiling)
		assert.True(t, got.Equal(d("500000")), "got %s", got)
	})

	t.Run("nil ceiling leaves base uncapped", func(t *testing.T) {
		got := ContributionBase(d("2000000"), cfg, nil)
		assert.True(t, got.Equal(d("2000000")), "got %s", got)
	})

	t.Run("floor applies before ceiling", func(t *testing.T) {
		got := ContributionBase(d("10000"), cfg, &cfg.RetirementCeiling)
		assert.True(t, got.Equal(d("41875")), "got %s", got)
	})
}

func TestRetirementContributions(t *testing.T) {
	cfg := taxconfig.DefaultSnapshot()

	t.Run("standard salary", func(t *testing.T) {
		employee, employer := RetirementContributions(d("500000"), cfg)
		assert.True(t, employee.Equal(d("21000")), "employee got %s", employee)
		assert.True(t, employer.Equal(d("21000")), "employer got %s", employer)
	})

	t.Run("salary above ceiling is capped", func(t *testing.T) {
		employee, employer := RetirementContributions(d("900000"), cfg)
		// 750000 * 0.042
		assert.True(t, employee.Equal(d("31500")), "employee got %s", employee)
		assert.True(t, employer.Equal(d("31500")), "employer got %s", employer)
	})

	t.Run("salary below minimum wage contributes on the floor", func(t *testing.T) {
		employee, _ := RetirementContributions(d("20000"), cfg)
		// 41875 * 0.042
		assert.True(t, employee.Equal(d("1758.75")), "employee got %s", employee)
	})
}

func TestFamilyContribution(t *testing.T) {
	cfg := taxconfig.DefaultSnapshot()

	got := FamilyContribution(d("500000"), cfg)
	assert.True(t, got.Equal(d("35000")), "got %s", got)

	capped := FamilyContribution(d("1000000"), cfg)
	// 750000 * 0.07
	assert.True(t, capped.Equal(d("52500")), "got %s", capped)
}

func TestWorkAccidentContribution(t *testing.T) {
	cfg := taxconfig.DefaultSnapshot()

	got := WorkAccidentContribution(d("500000"), d("0.025"), cfg)
	assert.True(t, got.Equal(d("12500")), "got %s", got)

	// Elevated risk-band rate on a capped base.
	capped := WorkAccidentContribution(d("900000"), d("0.05"), cfg)
	assert.True(t, capped.Equal(d("37500")), "got %s", capped)
}

func TestHealthContribution(t *testing.T) {
	cfg := taxconfig.DefaultSnapshot()

	t.Run("uncapped by default", func(t *testing.T) {
		got := HealthContribution(d("2000000"), cfg)
		assert.True(t, got.Equal(d("40000")), "got %s", got)
	})

	t.Run("configured ceiling caps the base", func(t *testing.T) {
		ceiling := d("1000000")
		cfg := cfg
		cfg.HealthCeiling = &ceiling
		got := HealthContribution(d("2000000"), cfg)
		assert.True(t, got.Equal(d("20000")), "got %s", got)
	})
}

func TestTrainingFundContribution(t *testing.T) {
	cfg := taxconfig.DefaultSnapshot()

	got := TrainingFundContribution(d("500000"), cfg)
	assert.True(t, got.Equal(d("5000")), "got %s", got)

	// No ceiling applies to the training fund.
	uncapped := TrainingFundContribution(d("2000000"), cfg)
	assert.True(t, uncapped.Equal(d("20000")), "got %s", uncapped)
}
