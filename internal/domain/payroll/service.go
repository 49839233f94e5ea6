package payroll

import "context"

// PayrollService is the gross-to-net orchestrator consumed by the HTTP layer.
type PayrollService interface {
	// Generate runs the full computation pipeline and persists the result.
	// It fails with ErrPayrollRecordAlreadyExists when a record for the
	// same (employee, period) already exists.
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollRecordResponse, error)

	// Regenerate is the explicit recomputation action: it replaces an
	// existing draft record for the period with a freshly computed one and
	// a new breakdown.
	Regenerate(ctx context.Context, req GeneratePayrollRequest) (PayrollRecordResponse, error)

	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecordResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)

	// Update is the partial-update path; it never recomputes.
	Update(ctx context.Context, req UpdatePayrollRecordRequest) (PayrollRecordResponse, error)

	Finalize(ctx context.Context, req FinalizePayrollRequest) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}
