package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusEnded     ContractStatus = "ended"
	ContractStatusSuspended ContractStatus = "suspended"
)

// Contract holds an employee's employment terms. At most one contract per
// employee is authoritative for a payroll computation: the most recently
// started one with active status.
type Contract struct {
	ID           string
	EmployeeID   string
	BaseSalary   decimal.Decimal
	WeeklyHours  *decimal.Decimal
	MonthlyHours *decimal.Decimal
	Department   *string

	// WorkAccidentRate, when set, takes precedence over any risk-band
	// classification of the department.
	WorkAccidentRate *decimal.Decimal

	Status    ContractStatus
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
