package response

import (
	"errors"
	"net/http"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/contract"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/sigma-erp/payroll-engine-go/internal/domain/taxconfig"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Configuration errors
	case errors.Is(err, taxconfig.ErrConfigurationUnavailable):
		ServiceUnavailable(w, "Payroll configuration is unavailable")
	case errors.Is(err, taxconfig.ErrInvalidConfiguration):
		ServiceUnavailable(w, "Payroll configuration is invalid")
	case errors.Is(err, taxconfig.ErrUnknownConstantKey):
		ServiceUnavailable(w, "Payroll configuration contains an unknown constant")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRecordFinalized):
		Conflict(w, "Payroll record is finalized")
	case errors.Is(err, payroll.ErrCannotDeleteFinalRecord):
		Conflict(w, "Finalized payroll records cannot be deleted")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidAmount):
		BadRequest(w, "Invalid amount", nil)
	case errors.Is(err, payroll.ErrNoMatchingBracket):
		ServiceUnavailable(w, "Tax table does not cover the taxable income")

	// Contract domain errors
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, contract.ErrNoActiveContract):
		NotFound(w, "No active contract for employee")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
