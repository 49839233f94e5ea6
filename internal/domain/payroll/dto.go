package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sigma-erp/payroll-engine-go/internal/pkg/validator"
)

// ========== GENERATION DTOs ==========

// GeneratePayrollRequest carries the manual inputs of one payroll-generation
// request. Field names follow the wire contract of the surrounding ERP.
// When BaseSalary is omitted the engine resolves it from the employee's
// active contract.
type GeneratePayrollRequest struct {
	EmployeeID     string           `json:"employeeId"`
	Period         string           `json:"periode,omitempty"` // "YYYY-MM", alternative to mois+annee
	Month          int              `json:"mois,omitempty"`
	Year           int              `json:"annee,omitempty"`
	BaseSalary     *decimal.Decimal `json:"baseSalaire,omitempty"`
	Overtime       *decimal.Decimal `json:"heuresSup,omitempty"`
	OvertimeDetail []OvertimeSlice  `json:"heuresSupDetails,omitempty"`
	Bonuses        *decimal.Decimal `json:"primes,omitempty"`
	Allowances     *decimal.Decimal `json:"indemnite,omitempty"`
	OtherDeduction *decimal.Decimal `json:"autresRetenues,omitempty"`
	Deductions     []DeductionLine  `json:"deductions,omitempty"`
	FiscalParts    *int             `json:"partsFiscales,omitempty"`
	Currency       *string          `json:"devise,omitempty"`

	// WorkAccidentRate is the per-request explicit override, the highest
	// rung of the rate precedence chain.
	WorkAccidentRate *decimal.Decimal `json:"cnpsAT,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "is required"})
	}

	if r.Period == "" {
		if r.Month < 1 || r.Month > 12 {
			errs = append(errs, validator.ValidationError{Field: "mois", Message: "must be between 1 and 12"})
		}
		if r.Year < 2000 {
			errs = append(errs, validator.ValidationError{Field: "annee", Message: "must be 2000 or later"})
		}
	} else if _, _, err := parsePeriodLabel(r.Period); err != nil {
		errs = append(errs, validator.ValidationError{Field: "periode", Message: "must be formatted YYYY-MM"})
	}

	nonNegative := map[string]*decimal.Decimal{
		"baseSalaire":    r.BaseSalary,
		"heuresSup":      r.Overtime,
		"primes":         r.Bonuses,
		"indemnite":      r.Allowances,
		"autresRetenues": r.OtherDeduction,
	}
	for field, v := range nonNegative {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	for i, s := range r.OvertimeDetail {
		if s.Hours.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("heuresSupDetails[%d].hours", i), Message: "must be non-negative"})
		}
		if s.Multiplier.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("heuresSupDetails[%d].rate", i), Message: "must be non-negative"})
		}
	}

	for i, d := range r.Deductions {
		if d.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("deductions[%d].amount", i), Message: "must be non-negative"})
		}
	}

	if r.WorkAccidentRate != nil && !validator.IsValidRate(*r.WorkAccidentRate) {
		errs = append(errs, validator.ValidationError{Field: "cnpsAT", Message: "must be a fraction between 0 and 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResolvePeriod normalizes the three accepted period inputs into
// (month, year, label).
func (r *GeneratePayrollRequest) ResolvePeriod() (month, year int, label string, err error) {
	if r.Period != "" {
		month, year, err = parsePeriodLabel(r.Period)
		if err != nil {
			return 0, 0, "", ErrInvalidPeriod
		}
		return month, year, r.Period, nil
	}
	if r.Month < 1 || r.Month > 12 || r.Year < 2000 {
		return 0, 0, "", ErrInvalidPeriod
	}
	return r.Month, r.Year, fmt.Sprintf("%04d-%02d", r.Year, r.Month), nil
}

func parsePeriodLabel(label string) (month, year int, err error) {
	t, ok := validator.IsValidPeriod(label)
	if !ok {
		return 0, 0, fmt.Errorf("invalid period label %q", label)
	}
	return int(t.Month()), t.Year(), nil
}

// ========== RECORD DTOs ==========

// UpdatePayrollRecordRequest is the explicit partial-update path. It edits
// stored fields only and never triggers a recomputation; the breakdown keeps
// the originally computed values.
type UpdatePayrollRecordRequest struct {
	ID             string           `json:"-"`
	BaseSalary     *decimal.Decimal `json:"baseSalaire,omitempty"`
	OvertimeAmount *decimal.Decimal `json:"heuresSup,omitempty"`
	Bonuses        *decimal.Decimal `json:"primes,omitempty"`
	Allowances     *decimal.Decimal `json:"indemnite,omitempty"`
	OtherDeduction *decimal.Decimal `json:"autresRetenues,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

func (r *UpdatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	nonNegative := map[string]*decimal.Decimal{
		"baseSalaire":    r.BaseSalary,
		"heuresSup":      r.OvertimeAmount,
		"primes":         r.Bonuses,
		"indemnite":      r.Allowances,
		"autresRetenues": r.OtherDeduction,
	}
	for field, v := range nonNegative {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FinalizePayrollRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *FinalizePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}
	for i, id := range r.RecordIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("record_ids[%d]", i), Message: "must be a valid UUID"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeContributionsResponse struct {
	Retirement     decimal.Decimal `json:"retraite"`
	HousingLevy    decimal.Decimal `json:"logement"`
	EmploymentLevy decimal.Decimal `json:"emploi"`
	Total          decimal.Decimal `json:"total"`
}

type EmployerContributionsResponse struct {
	Retirement     decimal.Decimal `json:"retraite"`
	Family         decimal.Decimal `json:"prestationsFamiliales"`
	WorkAccident   decimal.Decimal `json:"accidentTravail"`
	Health         decimal.Decimal `json:"sante"`
	TrainingFund   decimal.Decimal `json:"formation"`
	HousingLevy    decimal.Decimal `json:"logement"`
	EmploymentLevy decimal.Decimal `json:"emploi"`
	Total          decimal.Decimal `json:"total"`
}

type PayrollRecordResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	PeriodLabel string `json:"periode"`
	Month       int    `json:"mois"`
	Year        int    `json:"annee"`
	Currency    string `json:"devise"`

	BaseSalary     decimal.Decimal `json:"baseSalaire"`
	OvertimeAmount decimal.Decimal `json:"heuresSup"`
	OvertimeDetail []OvertimeSlice `json:"heuresSupDetails,omitempty"`
	Bonuses        decimal.Decimal `json:"primes"`
	Allowances     decimal.Decimal `json:"indemnite"`
	OtherDeduction decimal.Decimal `json:"autresRetenues"`
	Deductions     []DeductionLine `json:"deductions,omitempty"`
	FiscalParts    int             `json:"partsFiscales"`

	GrossPay              decimal.Decimal               `json:"salaireBrut"`
	EmployeeContributions EmployeeContributionsResponse `json:"cotisationsSalariales"`
	EmployerContributions EmployerContributionsResponse `json:"cotisationsPatronales"`
	TaxableIncome         decimal.Decimal               `json:"baseImposable"`
	TaxableAfterAbatement decimal.Decimal               `json:"baseImposableApresAbattement"`
	IncomeTax             decimal.Decimal               `json:"impotRevenu"`
	NetPay                decimal.Decimal               `json:"netAPayer"`

	Status     string     `json:"statut"`
	Incomplete bool       `json:"incomplete,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	Details    *Breakdown `json:"details,omitempty"`
}

type PayrollFilter struct {
	PeriodMonth *int
	PeriodYear  *int
	Status      *string
	EmployeeID  *string
	Page        int
	Limit       int
	SortBy      string
	SortOrder   string
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PayrollSummaryResponse struct {
	PeriodMonth                int             `json:"period_month"`
	PeriodYear                 int             `json:"period_year"`
	TotalEmployees             int             `json:"total_employees"`
	TotalGrossPay              decimal.Decimal `json:"total_gross_pay"`
	TotalEmployeeContributions decimal.Decimal `json:"total_employee_contributions"`
	TotalEmployerCharges       decimal.Decimal `json:"total_employer_charges"`
	TotalIncomeTax             decimal.Decimal `json:"total_income_tax"`
	TotalNetPay                decimal.Decimal `json:"total_net_pay"`
	DraftCount                 int             `json:"draft_count"`
	FinalCount                 int             `json:"final_count"`
}
