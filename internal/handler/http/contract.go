package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/contract"
	"github.com/sigma-erp/payroll-engine-go/internal/handler/http/response"
)

type ContractHandler interface {
	CreateContract(w http.ResponseWriter, r *http.Request)
	GetContract(w http.ResponseWriter, r *http.Request)
	GetActiveContract(w http.ResponseWriter, r *http.Request)
	ListEmployeeContracts(w http.ResponseWriter, r *http.Request)
}

type contractHandlerImpl struct {
	contractService contract.ContractService
}

func NewContractHandler(contractService contract.ContractService) ContractHandler {
	return &contractHandlerImpl{contractService: contractService}
}

func (h *contractHandlerImpl) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.contractService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contract created", result)
}

func (h *contractHandlerImpl) GetContract(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Contract ID is required", nil)
		return
	}

	result, err := h.contractService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *contractHandlerImpl) GetActiveContract(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.contractService.GetActiveByEmployeeID(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *contractHandlerImpl) ListEmployeeContracts(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.contractService.ListByEmployeeID(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
