package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee represents a single billable charge owed by a student, tracked with a
// cumulative paid amount and a status derived from it.
type Fee struct {
	ID            string          `json:"id"`
	StudentID     string          `json:"student_id"`
	FeeTypeID     *string         `json:"fee_type_id,omitempty"`
	Title         string          `json:"title"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Status        FeeStatus       `json:"status"`
	DueDate       time.Time       `json:"due_date"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`

	StudentName string `json:"student_name,omitempty"`
	FeeTypeName string `json:"fee_type_name,omitempty"`
}

// Outstanding returns the unpaid remainder of the fee.
func (f *Fee) Outstanding() decimal.Decimal {
	return f.TotalAmount.Sub(f.PaidAmount)
}

// DeriveFeeStatus returns the status implied by a paid/total pair:
// paid when paid >= total, pending when nothing is paid, partial otherwise.
func DeriveFeeStatus(paid, total decimal.Decimal) FeeStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return FeePaid
	case paid.IsZero():
		return FeePending
	default:
		return FeePartial
	}
}
