package contract

import "context"

type ContractRepository interface {
	Create(ctx context.Context, c Contract) (Contract, error)
	GetByID(ctx context.Context, id string) (Contract, error)

	// GetActiveByEmployeeID returns the most recently started active
	// contract, which is the one authoritative for payroll computation.
	GetActiveByEmployeeID(ctx context.Context, employeeID string) (Contract, error)

	ListByEmployeeID(ctx context.Context, employeeID string) ([]Contract, error)
}
