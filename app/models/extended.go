package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates the numbers shown on the landing page.
type DashboardStats struct {
	TotalStudents     int             `json:"total_students"`
	ActiveLeads       int             `json:"active_leads"`
	TotalStaff        int             `json:"total_staff"`
	TotalClasses      int             `json:"total_classes"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	MonthlyExpenses   decimal.Decimal `json:"monthly_expenses"`
	FeesOutstanding   decimal.Decimal `json:"fees_outstanding"`
	FeeCollectionRate float64         `json:"fee_collection_rate"`
	AttendanceRate    float64         `json:"attendance_rate"`
}

// FeeStats summarises the fee ledger for the fees screen.
type FeeStats struct {
	TotalFees        int             `json:"total_fees"`
	PaidFees         int             `json:"paid_fees"`
	PartialFees      int             `json:"partial_fees"`
	PendingFees      int             `json:"pending_fees"`
	TotalBilled      decimal.Decimal `json:"total_billed"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	StudentsWithFees int             `json:"students_with_fees"`
}

// PeriodSummary is one row of the accounting report.
type PeriodSummary struct {
	Period   string          `json:"period"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// OutstandingFeeRow is one row of the outstanding-fees report.
type OutstandingFeeRow struct {
	StudentID   string          `json:"student_id"`
	StudentName string          `json:"student_name"`
	FeeTitle    string          `json:"fee_title"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	DueDate     time.Time       `json:"due_date"`
	Status      FeeStatus       `json:"status"`
}
