package payroll

import "context"

// PayrollRepository defines data access for payroll records. Persisting a
// record is a single atomic insert; no computation spans more than one write.
type PayrollRepository interface {
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	// ReplacePayrollRecord atomically deletes the draft record oldID and
	// inserts its replacement.
	ReplacePayrollRecord(ctx context.Context, oldID string, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	UpdatePayrollRecord(ctx context.Context, req UpdatePayrollRecordRequest) error
	FinalizePayrollRecords(ctx context.Context, ids []string, finalizedBy string) error
	DeletePayrollRecord(ctx context.Context, id string) error
	GetPayrollSummary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}
