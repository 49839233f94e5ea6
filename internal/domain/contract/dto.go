package contract

import (
	"github.com/shopspring/decimal"

	"github.com/sigma-erp/payroll-engine-go/internal/pkg/validator"
)

type CreateContractRequest struct {
	EmployeeID       string           `json:"employee_id"`
	BaseSalary       decimal.Decimal  `json:"base_salary"`
	WeeklyHours      *decimal.Decimal `json:"weekly_hours,omitempty"`
	MonthlyHours     *decimal.Decimal `json:"monthly_hours,omitempty"`
	Department       *string          `json:"department,omitempty"`
	WorkAccidentRate *decimal.Decimal `json:"work_accident_rate,omitempty"`
	StartDate        string           `json:"start_date"`
}

func (r *CreateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.WorkAccidentRate != nil && !validator.IsValidRate(*r.WorkAccidentRate) {
		errs = append(errs, validator.ValidationError{Field: "work_accident_rate", Message: "must be a fraction between 0 and 1"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ContractResponse struct {
	ID               string           `json:"id"`
	EmployeeID       string           `json:"employee_id"`
	BaseSalary       decimal.Decimal  `json:"base_salary"`
	WeeklyHours      *decimal.Decimal `json:"weekly_hours,omitempty"`
	MonthlyHours     *decimal.Decimal `json:"monthly_hours,omitempty"`
	Department       *string          `json:"department,omitempty"`
	WorkAccidentRate *decimal.Decimal `json:"work_accident_rate,omitempty"`
	Status           string           `json:"status"`
	StartDate        string           `json:"start_date"`
	EndDate          *string          `json:"end_date,omitempty"`
}
