package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups accounting transactions (e.g. "Tuition", "Rent", "Salaries").
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`
}

// Transaction represents a single income or expense entry in the books.
type Transaction struct {
	ID         string          `json:"id"`
	Type       TransactionType `json:"type"`
	CategoryID string          `json:"category_id"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Notes      *string         `json:"notes,omitempty"`
	ReceiptID  *string         `json:"receipt_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty"`

	CategoryName string `json:"category_name,omitempty"`
}
