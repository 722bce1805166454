package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vinzencor/student-management/app/models"
)

// ReceiptRepo is the PostgreSQL implementation of ledger.ReceiptIssuer.
// Receipts are insert-only; there is deliberately no update or delete here.
type ReceiptRepo struct {
	db *sql.DB
}

// NewReceiptRepo creates a ReceiptRepo over the shared pool.
func NewReceiptRepo(db *sql.DB) *ReceiptRepo {
	return &ReceiptRepo{db: db}
}

// Create persists a receipt and returns the stored record.
func (r *ReceiptRepo) Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	query := `INSERT INTO receipts (receipt_number, student_id, fee_id, amount_paid,
				payment_date, payment_method, description, issued_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`

	created := *receipt
	err := r.db.QueryRowContext(ctx, query,
		receipt.ReceiptNumber, receipt.StudentID, receipt.FeeID, receipt.AmountPaid,
		receipt.PaymentDate, receipt.PaymentMethod, receipt.Description, receipt.IssuedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetReceipts lists receipts, newest first, optionally filtered by student
// and/or an inclusive payment-date range (YYYY-MM-DD strings, empty = open).
func GetReceipts(db *sql.DB, studentID, from, to string) ([]*models.Receipt, error) {
	query := `SELECT r.id, r.receipt_number, r.student_id, r.fee_id, r.amount_paid,
			  r.payment_date, r.payment_method, COALESCE(r.description, ''), r.issued_at,
			  s.first_name || ' ' || s.last_name AS student_name,
			  f.title AS fee_title
			  FROM receipts r
			  JOIN students s ON r.student_id = s.id
			  JOIN fees f ON r.fee_id = f.id
			  WHERE 1=1`

	var args []interface{}
	if studentID != "" {
		args = append(args, studentID)
		query += fmt.Sprintf(" AND r.student_id = $%d", len(args))
	}
	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(" AND r.payment_date >= $%d", len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(" AND r.payment_date <= $%d", len(args))
	}
	query += " ORDER BY r.issued_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receipts := []*models.Receipt{}
	for rows.Next() {
		r := &models.Receipt{}
		err := rows.Scan(
			&r.ID, &r.ReceiptNumber, &r.StudentID, &r.FeeID, &r.AmountPaid,
			&r.PaymentDate, &r.PaymentMethod, &r.Description, &r.IssuedAt,
			&r.StudentName, &r.FeeTitle,
		)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}

// GetReceiptByNumber returns a single receipt or sql.ErrNoRows.
func GetReceiptByNumber(db *sql.DB, number string) (*models.Receipt, error) {
	query := `SELECT r.id, r.receipt_number, r.student_id, r.fee_id, r.amount_paid,
			  r.payment_date, r.payment_method, COALESCE(r.description, ''), r.issued_at,
			  s.first_name || ' ' || s.last_name, f.title
			  FROM receipts r
			  JOIN students s ON r.student_id = s.id
			  JOIN fees f ON r.fee_id = f.id
			  WHERE r.receipt_number = $1`

	r := &models.Receipt{}
	err := db.QueryRow(query, number).Scan(
		&r.ID, &r.ReceiptNumber, &r.StudentID, &r.FeeID, &r.AmountPaid,
		&r.PaymentDate, &r.PaymentMethod, &r.Description, &r.IssuedAt,
		&r.StudentName, &r.FeeTitle,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}
