package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
)

func TestHourlyRate(t *testing.T) {
	cfg := taxconfig.DefaultSnapshot()

	rate := HourlyRate(d("300000"), cfg)
	expected := d("300000").Div(d("173"))
	assert.True(t, rate.Equal(expected), "got %s, want %s", rate, expected)

	// A salary below the minimum wage is floored before division.
	floored := HourlyRate(d("10000"), cfg)
	assert.True(t, floored.Equal(d("41875").Div(d("173"))), "got %s", floored)
}

func TestOvertimeAmount(t *testing.T) {
	cfg := taxconfig.DefaultSnapshot()

	t.Run("no overtime", func(t *testing.T) {
		amount, rate := OvertimeAmount(d("300000"), nil, nil, cfg)
		assert.True(t, amount.IsZero())
		assert.Nil(t, rate)
	})

	t.Run("direct amount is used as-is", func(t *testing.T) {
		direct := d("15000")
		amount, rate := OvertimeAmount(d("300000"), &direct, nil, cfg)
		assert.True(t, amount.Equal(d("15000")), "got %s", amount)
		assert.Nil(t, rate)
	})

	t.Run("slices value hours at the derived hourly rate", func(t *testing.T) {
		slices := []payroll.OvertimeSlice{
			{Hours: d("10"), Multiplier: d("1.5")},
		}
		amount, rate := OvertimeAmount(d("300000"), nil, slices, cfg)
		// 10 * (300000 / 173) * 1.5
		assert.True(t, amount.Equal(d("26011.56")), "got %s", amount)
		assert.NotNil(t, rate)
	})

	t.Run("slices override a direct amount", func(t *testing.T) {
		direct := d("999999")
		slices := []payroll.OvertimeSlice{
			{Hours: d("10"), Multiplier: d("1.5")},
		}
		amount, _ := OvertimeAmount(d("300000"), &direct, slices, cfg)
		assert.True(t, amount.Equal(d("26011.56")), "got %s", amount)
	})

	t.Run("multiple slices accumulate", func(t *testing.T) {
		slices := []payroll.OvertimeSlice{
			{Hours: d("8"), Multiplier: d("1.2")},
			{Hours: d("4"), Multiplier: d("1.5")},
		}
		amount, _ := OvertimeAmount(d("346000"), nil, slices, cfg)
		// hourly rate 346000/173 = 2000; 8*2000*1.2 + 4*2000*1.5
		assert.True(t, amount.Equal(d("31200")), "got %s", amount)
	})
}

func TestComposeGross(t *testing.T) {
	gross := ComposeGross(d("300000"), d("26011.56"), d("20000"), d("5000"))
	assert.True(t, gross.Equal(d("351011.56")), "got %s", gross)

	bare := ComposeGross(d("300000"), decimal.Zero, decimal.Zero, decimal.Zero)
	assert.True(t, bare.Equal(d("300000")))
}
