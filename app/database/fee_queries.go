package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vinzencor/student-management/app/ledger"
	"github.com/vinzencor/student-management/app/models"
)

// FeeRepo is the PostgreSQL implementation of ledger.FeeRepository.
type FeeRepo struct {
	db *sql.DB
}

// NewFeeRepo creates a FeeRepo over the shared pool.
func NewFeeRepo(db *sql.DB) *FeeRepo {
	return &FeeRepo{db: db}
}

const feeColumns = `id, student_id, fee_type_id, title, total_amount, paid_amount,
		status, due_date, paid_date, payment_method, created_at, updated_at`

// ListByStudent returns all of a student's fees, newest first. The id
// tiebreak keeps the order stable for rows created in the same instant.
func (r *FeeRepo) ListByStudent(ctx context.Context, studentID string) ([]*models.Fee, error) {
	query := `SELECT ` + feeColumns + `
			  FROM fees
			  WHERE student_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []*models.Fee
	for rows.Next() {
		f, err := scanFee(rows)
		if err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}

// Create persists a new fee and returns the stored record.
func (r *FeeRepo) Create(ctx context.Context, fee *models.Fee) (*models.Fee, error) {
	query := `INSERT INTO fees (student_id, fee_type_id, title, total_amount, paid_amount,
				status, due_date, paid_date, payment_method, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	created := *fee
	err := r.db.QueryRowContext(ctx, query,
		fee.StudentID, fee.FeeTypeID, fee.Title, fee.TotalAmount, fee.PaidAmount,
		fee.Status, fee.DueDate, fee.PaidDate, fee.PaymentMethod,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a guarded patch: the row is written only while its
// paid_amount still equals upd.ExpectedPaid, so a concurrent payment that
// landed between our read and this write makes the update miss instead of
// silently overwriting it. A miss surfaces as ledger.ErrNotFound.
func (r *FeeRepo) Update(ctx context.Context, id string, upd ledger.FeeUpdate) (*models.Fee, error) {
	query := `UPDATE fees
			  SET paid_amount = $1, status = $2,
				  paid_date = COALESCE($3, paid_date),
				  payment_method = $4, updated_at = NOW()
			  WHERE id = $5 AND paid_amount = $6 AND deleted_at IS NULL
			  RETURNING ` + feeColumns

	row := r.db.QueryRowContext(ctx, query,
		upd.PaidAmount, upd.Status, upd.PaidDate, upd.PaymentMethod,
		id, upd.ExpectedPaid,
	)
	f, err := scanFee(row)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFee(row rowScanner) (*models.Fee, error) {
	f := &models.Fee{}
	err := row.Scan(
		&f.ID, &f.StudentID, &f.FeeTypeID, &f.Title, &f.TotalAmount, &f.PaidAmount,
		&f.Status, &f.DueDate, &f.PaidDate, &f.PaymentMethod, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// GetFees returns fees joined with student and fee type names, optionally
// filtered by student and/or status.
func GetFees(db *sql.DB, studentID string, status models.FeeStatus) ([]*models.Fee, error) {
	query := `SELECT f.id, f.student_id, f.fee_type_id, f.title, f.total_amount, f.paid_amount,
			  f.status, f.due_date, f.paid_date, f.payment_method, f.created_at, f.updated_at,
			  s.first_name || ' ' || s.last_name AS student_name,
			  COALESCE(ft.name, '') AS fee_type_name
			  FROM fees f
			  JOIN students s ON f.student_id = s.id
			  LEFT JOIN fee_types ft ON f.fee_type_id = ft.id
			  WHERE f.deleted_at IS NULL AND s.is_active = true`

	var args []interface{}
	if studentID != "" {
		args = append(args, studentID)
		query += fmt.Sprintf(" AND f.student_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND f.status = $%d", len(args))
	}
	query += " ORDER BY f.created_at DESC, f.id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fees := []*models.Fee{}
	for rows.Next() {
		f := &models.Fee{}
		err := rows.Scan(
			&f.ID, &f.StudentID, &f.FeeTypeID, &f.Title, &f.TotalAmount, &f.PaidAmount,
			&f.Status, &f.DueDate, &f.PaidDate, &f.PaymentMethod, &f.CreatedAt, &f.UpdatedAt,
			&f.StudentName, &f.FeeTypeName,
		)
		if err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}

// GetFeeByID returns a single fee or sql.ErrNoRows.
func GetFeeByID(db *sql.DB, id string) (*models.Fee, error) {
	query := `SELECT ` + feeColumns + ` FROM fees WHERE id = $1 AND deleted_at IS NULL`
	return scanFee(db.QueryRow(query, id))
}

// SoftDeleteFee marks a fee deleted; it stops appearing in listings and can
// no longer be targeted by payments.
func SoftDeleteFee(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE fees SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
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

// GetFeeStats aggregates the fee ledger for the fees screen.
func GetFeeStats(db *sql.DB) (*models.FeeStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COUNT(*) FILTER (WHERE status = 'partial'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(paid_amount), 0),
			COALESCE(SUM(total_amount - paid_amount), 0),
			COUNT(DISTINCT student_id)
		FROM fees
		WHERE deleted_at IS NULL`

	stats := &models.FeeStats{}
	err := db.QueryRow(query).Scan(
		&stats.TotalFees, &stats.PaidFees, &stats.PartialFees, &stats.PendingFees,
		&stats.TotalBilled, &stats.TotalCollected, &stats.TotalOutstanding,
		&stats.StudentsWithFees,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetOutstandingFees lists every open fee with the owing student, oldest due
// date first.
func GetOutstandingFees(db *sql.DB) ([]*models.OutstandingFeeRow, error) {
	query := `SELECT f.student_id, s.first_name || ' ' || s.last_name, f.title,
			  f.total_amount, f.paid_amount, f.total_amount - f.paid_amount,
			  f.due_date, f.status
			  FROM fees f
			  JOIN students s ON f.student_id = s.id
			  WHERE f.deleted_at IS NULL AND f.status IN ('pending', 'partial')
				AND s.is_active = true
			  ORDER BY f.due_date ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.OutstandingFeeRow{}
	for rows.Next() {
		r := &models.OutstandingFeeRow{}
		err := rows.Scan(&r.StudentID, &r.StudentName, &r.FeeTitle,
			&r.TotalAmount, &r.PaidAmount, &r.Outstanding, &r.DueDate, &r.Status)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountOverdueFees counts open fees past their due date, for the nightly
// sweep's report.
func CountOverdueFees(db *sql.DB) (int, decimal.Decimal, error) {
	var count int
	var amount decimal.Decimal
	err := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(total_amount - paid_amount), 0)
		FROM fees
		WHERE deleted_at IS NULL AND status IN ('pending', 'partial')
		  AND due_date < CURRENT_DATE`).Scan(&count, &amount)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return count, amount, nil
}

// ApplyFeeToStudents bills the given fee type to each student in one
// statement per student; all pending, due on dueDate.
func ApplyFeeToStudents(db *sql.DB, feeType *models.FeeType, studentIDs []string, amount decimal.Decimal, dueDate string) (int, error) {
	applied := 0
	for _, studentID := range studentIDs {
		_, err := db.Exec(`
			INSERT INTO fees (student_id, fee_type_id, title, total_amount, paid_amount, status, due_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 0, 'pending', $5, NOW(), NOW())`,
			studentID, feeType.ID, feeType.Name, amount, dueDate)
		if err != nil {
			return applied, fmt.Errorf("apply fee to student %s: %w", studentID, err)
		}
		applied++
	}
	return applied, nil
}
