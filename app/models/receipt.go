package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is an immutable proof-of-payment record. Exactly one receipt is
// issued per applied payment; receipts are never updated or deleted.
type Receipt struct {
	ID            string          `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	StudentID     string          `json:"student_id"`
	FeeID         string          `json:"fee_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description,omitempty"`
	IssuedAt      time.Time       `json:"issued_at"`

	StudentName string `json:"student_name,omitempty"`
	FeeTitle    string `json:"fee_title,omitempty"`
}
