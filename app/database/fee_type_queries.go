package database

import (
	"database/sql"

	"github.com/vinzencor/student-management/app/models"
)

const feeTypeColumns = `id, name, code, description, default_amount, is_active, created_at, updated_at`

func scanFeeType(row rowScanner) (*models.FeeType, error) {
	ft := &models.FeeType{}
	err := row.Scan(
		&ft.ID, &ft.Name, &ft.Code, &ft.Description, &ft.DefaultAmount,
		&ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ft, nil
}

// GetFeeTypes lists fee types; activeOnly restricts to billable ones.
func GetFeeTypes(db *sql.DB, activeOnly bool) ([]*models.FeeType, error) {
	query := `SELECT ` + feeTypeColumns + ` FROM fee_types WHERE deleted_at IS NULL`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []*models.FeeType{}
	for rows.Next() {
		ft, err := scanFeeType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, ft)
	}
	return types, rows.Err()
}

// GetFeeTypeByID returns a single fee type or sql.ErrNoRows.
func GetFeeTypeByID(db *sql.DB, id string) (*models.FeeType, error) {
	query := `SELECT ` + feeTypeColumns + ` FROM fee_types WHERE id = $1 AND deleted_at IS NULL`
	return scanFeeType(db.QueryRow(query, id))
}

// CreateFeeType inserts a new fee type.
func CreateFeeType(db *sql.DB, ft *models.FeeType) error {
	return db.QueryRow(`
		INSERT INTO fee_types (name, code, description, default_amount, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		ft.Name, ft.Code, ft.Description, ft.DefaultAmount, ft.IsActive,
	).Scan(&ft.ID, &ft.CreatedAt, &ft.UpdatedAt)
}

// UpdateFeeType updates the editable fields of a fee type.
func UpdateFeeType(db *sql.DB, ft *models.FeeType) error {
	result, err := db.Exec(`
		UPDATE fee_types
		SET name = $1, code = $2, description = $3, default_amount = $4,
			is_active = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL`,
		ft.Name, ft.Code, ft.Description, ft.DefaultAmount, ft.IsActive, ft.ID)
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

// SoftDeleteFeeType marks a fee type deleted. Fees already billed keep their
// reference.
func SoftDeleteFeeType(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE fee_types SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
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
