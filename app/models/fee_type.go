package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeType represents a billable charge category that can be applied to
// students (e.g. "Monthly Tuition", "Registration", "Materials").
type FeeType struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Description   *string         `json:"description,omitempty"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}
