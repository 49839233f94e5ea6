package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sigma-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/sigma-erp/payroll-engine-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GeneratePayroll(w http.ResponseWriter, r *http.Request)
	RegeneratePayroll(w http.ResponseWriter, r *http.Request)
	GetPayrollRecord(w http.ResponseWriter, r *http.Request)
	GetPayrollByEmployeePeriod(w http.ResponseWriter, r *http.Request)
	ListPayrollRecords(w http.ResponseWriter, r *http.Request)
	UpdatePayrollRecord(w http.ResponseWriter, r *http.Request)
	FinalizePayroll(w http.ResponseWriter, r *http.Request)
	DeletePayrollRecord(w http.ResponseWriter, r *http.Request)
	GetPayrollSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

func (h *payrollHandlerImpl) RegeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Regenerate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll regenerated", result)
}

func (h *payrollHandlerImpl) GetPayrollRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetPayrollByEmployeePeriod(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("period_month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Invalid period_month", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("period_year"))
	if err != nil || year < 2000 {
		response.BadRequest(w, "Invalid period_year", nil)
		return
	}

	result, err := h.payrollService.GetByEmployeePeriod(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		Page:      1,
		Limit:     20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if monthStr := r.URL.Query().Get("period_month"); monthStr != "" {
		if month, err := strconv.Atoi(monthStr); err == nil {
			filter.PeriodMonth = &month
		}
	}
	if yearStr := r.URL.Query().Get("period_year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.PeriodYear = &year
		}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if sortBy := r.URL.Query().Get("sort_by"); sortBy != "" {
		filter.SortBy = sortBy
	}
	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	result, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

func (h *payrollHandlerImpl) UpdatePayrollRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req payroll.UpdatePayrollRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payrollService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) FinalizePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.FinalizePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.payrollService.Finalize(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll finalized", nil)
}

func (h *payrollHandlerImpl) DeletePayrollRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	if err := h.payrollService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted successfully", nil)
}

func (h *payrollHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("period_month")
	yearStr := r.URL.Query().Get("period_year")

	if monthStr == "" || yearStr == "" {
		response.BadRequest(w, "period_month and period_year are required", nil)
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Invalid period_month", nil)
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 {
		response.BadRequest(w, "Invalid period_year", nil)
		return
	}

	result, err := h.payrollService.Summary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
