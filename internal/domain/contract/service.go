package contract

import "context"

type ContractService interface {
	Create(ctx context.Context, req CreateContractRequest) (ContractResponse, error)
	GetByID(ctx context.Context, id string) (ContractResponse, error)
	GetActiveByEmployeeID(ctx context.Context, employeeID string) (ContractResponse, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]ContractResponse, error)
}
