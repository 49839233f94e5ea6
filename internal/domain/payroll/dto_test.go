package payroll

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigma-erp/payroll-engine-go/internal/pkg/validator"
)

func TestGeneratePayrollRequest_ResolvePeriod(t *testing.T) {
	t.Run("label form", func(t *testing.T) {
		req := GeneratePayrollRequest{Period: "2025-03"}
		month, year, label, err := req.ResolvePeriod()
		require.NoError(t, err)
		assert.Equal(t, 3, month)
		assert.Equal(t, 2025, year)
		assert.Equal(t, "2025-03", label)
	})

	t.Run("split form", func(t *testing.T) {
		req := GeneratePayrollRequest{Month: 12, Year: 2024}
		month, year, label, err := req.ResolvePeriod()
		require.NoError(t, err)
		assert.Equal(t, 12, month)
		assert.Equal(t, 2024, year)
		assert.Equal(t, "2024-12", label)
	})

	t.Run("label wins when both are supplied", func(t *testing.T) {
		req := GeneratePayrollRequest{Period: "2025-06", Month: 1, Year: 2020}
		month, year, _, err := req.ResolvePeriod()
		require.NoError(t, err)
		assert.Equal(t, 6, month)
		assert.Equal(t, 2025, year)
	})

	t.Run("malformed label", func(t *testing.T) {
		req := GeneratePayrollRequest{Period: "03/2025"}
		_, _, _, err := req.ResolvePeriod()
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("out-of-range month", func(t *testing.T) {
		req := GeneratePayrollRequest{Month: 0, Year: 2025}
		_, _, _, err := req.ResolvePeriod()
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}

func TestGeneratePayrollRequest_Validate(t *testing.T) {
	base := decimal.NewFromInt(500000)
	negative := decimal.NewFromInt(-1)
	badRate := decimal.NewFromInt(2)

	t.Run("valid request", func(t *testing.T) {
		req := GeneratePayrollRequest{EmployeeID: "emp-1", Period: "2025-03", BaseSalary: &base}
		assert.NoError(t, req.Validate())
	})

	t.Run("field errors are itemized", func(t *testing.T) {
		req := GeneratePayrollRequest{
			Period:           "2025-03",
			Bonuses:          &negative,
			WorkAccidentRate: &badRate,
			OvertimeDetail:   []OvertimeSlice{{Hours: negative, Multiplier: decimal.NewFromInt(1)}},
		}
		err := req.Validate()
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		fields := verrs.ToMap()
		assert.Contains(t, fields, "employeeId")
		assert.Contains(t, fields, "primes")
		assert.Contains(t, fields, "cnpsAT")
		assert.Contains(t, fields, "heuresSupDetails[0].hours")
	})
}

func TestUpdatePayrollRecordRequest_Validate(t *testing.T) {
	negative := decimal.NewFromInt(-10)

	req := UpdatePayrollRecordRequest{OtherDeduction: &negative}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "autresRetenues")
}

func TestFinalizePayrollRequest_Validate(t *testing.T) {
	assert.Error(t, (&FinalizePayrollRequest{}).Validate())
	assert.Error(t, (&FinalizePayrollRequest{RecordIDs: []string{"not-a-uuid"}}).Validate())

	id := uuid.Must(uuid.NewV7()).String()
	assert.NoError(t, (&FinalizePayrollRequest{RecordIDs: []string{id}}).Validate())
}
