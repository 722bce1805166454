package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course represents an offering in the catalog (e.g. "IGCSE Maths").
type Course struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Description   *string         `json:"description,omitempty"`
	MonthlyFee    decimal.Decimal `json:"monthly_fee"`
	DurationWeeks *int            `json:"duration_weeks,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}
