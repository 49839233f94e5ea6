package contract

import (
	"context"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/contract"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/database"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/validator"
)

type ContractServiceImpl struct {
	db           *database.DB
	contractRepo contract.ContractRepository
}

func NewContractService(db *database.DB, contractRepo contract.ContractRepository) contract.ContractService {
	return &ContractServiceImpl{
		db:           db,
		contractRepo: contractRepo,
	}
}

func (s *ContractServiceImpl) Create(ctx context.Context, req contract.CreateContractRequest) (contract.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.ContractResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)

	created, err := s.contractRepo.Create(ctx, contract.Contract{
		EmployeeID:       req.EmployeeID,
		BaseSalary:       req.BaseSalary,
		WeeklyHours:      req.WeeklyHours,
		MonthlyHours:     req.MonthlyHours,
		Department:       req.Department,
		WorkAccidentRate: req.WorkAccidentRate,
		Status:           contract.ContractStatusActive,
		StartDate:        startDate,
	})
	if err != nil {
		return contract.ContractResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *ContractServiceImpl) GetByID(ctx context.Context, id string) (contract.ContractResponse, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return mapToResponse(c), nil
}

func (s *ContractServiceImpl) GetActiveByEmployeeID(ctx context.Context, employeeID string) (contract.ContractResponse, error) {
	c, err := s.contractRepo.GetActiveByEmployeeID(ctx, employeeID)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return mapToResponse(c), nil
}

func (s *ContractServiceImpl) ListByEmployeeID(ctx context.Context, employeeID string) ([]contract.ContractResponse, error) {
	contracts, err := s.contractRepo.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]contract.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, mapToResponse(c))
	}
	return responses, nil
}

func mapToResponse(c contract.Contract) contract.ContractResponse {
	resp := contract.ContractResponse{
		ID:               c.ID,
		EmployeeID:       c.EmployeeID,
		BaseSalary:       c.BaseSalary,
		WeeklyHours:      c.WeeklyHours,
		MonthlyHours:     c.MonthlyHours,
		Department:       c.Department,
		WorkAccidentRate: c.WorkAccidentRate,
		Status:           string(c.Status),
		StartDate:        c.StartDate.Format("2006-01-02"),
	}
	if c.EndDate != nil {
		endDate := c.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}
	return resp
}
