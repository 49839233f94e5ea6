package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordFinalized     = errors.New("payroll record is finalized, cannot modify")
	ErrCannotDeleteFinalRecord    = errors.New("cannot delete finalized payroll record")
	ErrInvalidPeriod              = errors.New("invalid payroll period")

	// ErrInvalidAmount signals a numeric input that violates the
	// computation invariants (negative salary, negative rate, and so on)
	// after request validation has passed. Nothing is persisted.
	ErrInvalidAmount = errors.New("invalid amount in payroll computation")

	// ErrNoMatchingBracket is only used internally to flag an incomplete
	// tax evaluation; it never aborts a computation.
	ErrNoMatchingBracket = errors.New("no tax bracket matches taxable income")
)
