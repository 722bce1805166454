package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff represents an employee of the centre (tutor, front desk, admin).
type Staff struct {
	ID            string          `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email,omitempty"`
	Role          string          `json:"role"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	JoinedAt      time.Time       `json:"joined_at"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}

// FullName returns the staff member's display name.
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// SalaryPayment records a salary disbursement to a staff member.
// Each payment also produces a matching expense transaction.
type SalaryPayment struct {
	ID          string          `json:"id"`
	StaffID     string          `json:"staff_id"`
	Amount      decimal.Decimal `json:"amount"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Reference   *string         `json:"reference,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	PaidAt      time.Time       `json:"paid_at"`

	StaffName string `json:"staff_name,omitempty"`
}
