package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vinzencor/student-management/app/models"
)

// GetCategories lists active transaction categories, optionally by type.
func GetCategories(db *sql.DB, txType models.TransactionType) ([]*models.Category, error) {
	query := `SELECT id, name, type, is_active, created_at, updated_at
			  FROM categories
			  WHERE deleted_at IS NULL`
	var args []interface{}
	if txType != "" {
		args = append(args, txType)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += ` ORDER BY name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		cat := &models.Category{}
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Type, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// CreateCategory inserts a new category.
func CreateCategory(db *sql.DB, cat *models.Category) error {
	return db.QueryRow(`
		INSERT INTO categories (name, type, is_active)
		VALUES ($1, $2, true)
		RETURNING id, created_at, updated_at`,
		cat.Name, cat.Type,
	).Scan(&cat.ID, &cat.CreatedAt, &cat.UpdatedAt)
}

const transactionColumns = `t.id, t.type, t.category_id, t.title, t.amount, t.date,
		t.notes, t.receipt_id, t.created_at, t.updated_at, c.name`

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := row.Scan(
		&t.ID, &t.Type, &t.CategoryID, &t.Title, &t.Amount, &t.Date,
		&t.Notes, &t.ReceiptID, &t.CreatedAt, &t.UpdatedAt, &t.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTransactions lists book entries filtered by type, category and date range,
// newest first.
func GetTransactions(db *sql.DB, txType models.TransactionType, categoryID string, from, to *time.Time) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
			  FROM transactions t
			  JOIN categories c ON t.category_id = c.id
			  WHERE t.deleted_at IS NULL`

	var args []interface{}
	if txType != "" {
		args = append(args, txType)
		query += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	if categoryID != "" {
		args = append(args, categoryID)
		query += fmt.Sprintf(" AND t.category_id = $%d", len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}
	query += ` ORDER BY t.date DESC, t.created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// CreateTransaction inserts a manual book entry.
func CreateTransaction(db *sql.DB, t *models.Transaction) error {
	return db.QueryRow(`
		INSERT INTO transactions (type, category_id, title, amount, date, notes, receipt_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		t.Type, t.CategoryID, t.Title, t.Amount, t.Date, t.Notes, t.ReceiptID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// SoftDeleteTransaction marks a book entry deleted.
func SoftDeleteTransaction(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE transactions SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PaySalary records a salary disbursement and its matching expense entry in
// one transaction. The salaries category must exist (seeded by migrations).
func PaySalary(db *sql.DB, payment *models.SalaryPayment) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var staffName string
	err = tx.QueryRow(`
		SELECT first_name || ' ' || last_name FROM staff
		WHERE id = $1 AND deleted_at IS NULL`, payment.StaffID).Scan(&staffName)
	if err != nil {
		return err
	}

	err = tx.QueryRow(`
		INSERT INTO salary_payments (staff_id, amount, period_start, period_end, reference, notes, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		payment.StaffID, payment.Amount, payment.PeriodStart, payment.PeriodEnd,
		payment.Reference, payment.Notes, payment.PaidAt,
	).Scan(&payment.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO transactions (type, category_id, title, amount, date, notes)
		SELECT 'expense', id, $1, $2, $3, $4
		FROM categories WHERE name = 'Salaries' AND deleted_at IS NULL`,
		"Salary: "+staffName, payment.Amount, payment.PaidAt, payment.Notes)
	if err != nil {
		return err
	}

	payment.StaffName = staffName
	return tx.Commit()
}

// GetSalaryPayments lists disbursements for a staff member, newest first.
// An empty staffID lists all.
func GetSalaryPayments(db *sql.DB, staffID string) ([]*models.SalaryPayment, error) {
	query := `SELECT sp.id, sp.staff_id, sp.amount, sp.period_start, sp.period_end,
				sp.reference, sp.notes, sp.paid_at, s.first_name || ' ' || s.last_name
			  FROM salary_payments sp
			  JOIN staff s ON sp.staff_id = s.id`
	var args []interface{}
	if staffID != "" {
		args = append(args, staffID)
		query += ` WHERE sp.staff_id = $1`
	}
	query += ` ORDER BY sp.paid_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*models.SalaryPayment{}
	for rows.Next() {
		p := &models.SalaryPayment{}
		err := rows.Scan(&p.ID, &p.StaffID, &p.Amount, &p.PeriodStart, &p.PeriodEnd,
			&p.Reference, &p.Notes, &p.PaidAt, &p.StaffName)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetPeriodSummaries returns monthly income/expense totals over a date range.
func GetPeriodSummaries(db *sql.DB, from, to time.Time) ([]*models.PeriodSummary, error) {
	rows, err := db.Query(`
		SELECT to_char(date_trunc('month', date), 'YYYY-MM') AS period,
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE deleted_at IS NULL AND date >= $1 AND date <= $2
		GROUP BY period
		ORDER BY period`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []*models.PeriodSummary{}
	for rows.Next() {
		s := &models.PeriodSummary{}
		if err := rows.Scan(&s.Period, &s.Income, &s.Expenses); err != nil {
			return nil, err
		}
		s.Net = s.Income.Sub(s.Expenses)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetDashboardStats gathers the landing-page aggregates in one round trip
// per concern.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{
		MonthlyRevenue:  decimal.Zero,
		MonthlyExpenses: decimal.Zero,
		FeesOutstanding: decimal.Zero,
	}

	err := db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM students WHERE deleted_at IS NULL AND is_active),
			(SELECT COUNT(*) FROM leads WHERE deleted_at IS NULL AND status NOT IN ('converted', 'lost')),
			(SELECT COUNT(*) FROM staff WHERE deleted_at IS NULL AND is_active),
			(SELECT COUNT(*) FROM class_sessions WHERE deleted_at IS NULL AND is_active)`,
	).Scan(&stats.TotalStudents, &stats.ActiveLeads, &stats.TotalStaff, &stats.TotalClasses)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE deleted_at IS NULL AND date >= date_trunc('month', CURRENT_DATE)`,
	).Scan(&stats.MonthlyRevenue, &stats.MonthlyExpenses)
	if err != nil {
		return nil, err
	}

	var billed, collected decimal.Decimal
	err = db.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(paid_amount), 0)
		FROM fees WHERE deleted_at IS NULL`,
	).Scan(&billed, &collected)
	if err != nil {
		return nil, err
	}
	stats.FeesOutstanding = billed.Sub(collected)
	if billed.IsPositive() {
		rate, _ := collected.Div(billed).Mul(decimal.NewFromInt(100)).Float64()
		stats.FeeCollectionRate = rate
	}

	var total, attended int
	err = db.QueryRow(`
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status IN ('present', 'late'))
		FROM attendance
		WHERE date >= date_trunc('month', CURRENT_DATE)`,
	).Scan(&total, &attended)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		stats.AttendanceRate = float64(attended) / float64(total) * 100
	}

	return stats, nil
}
