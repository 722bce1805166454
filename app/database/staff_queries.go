package database

import (
	"database/sql"

	"github.com/vinzencor/student-management/app/models"
)

const staffColumns = `id, first_name, last_name, phone, email, role, monthly_salary,
		joined_at, is_active, created_at, updated_at`

func scanStaff(row rowScanner) (*models.Staff, error) {
	s := &models.Staff{}
	err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Phone, &s.Email, &s.Role, &s.MonthlySalary,
		&s.JoinedAt, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStaff lists active staff members ordered by name.
func GetStaff(db *sql.DB) ([]*models.Staff, error) {
	query := `SELECT ` + staffColumns + `
			  FROM staff
			  WHERE deleted_at IS NULL
			  ORDER BY first_name, last_name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := []*models.Staff{}
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// GetStaffByID returns a single staff member or sql.ErrNoRows.
func GetStaffByID(db *sql.DB, id string) (*models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1 AND deleted_at IS NULL`
	return scanStaff(db.QueryRow(query, id))
}

// CreateStaff inserts a new staff member.
func CreateStaff(db *sql.DB, s *models.Staff) error {
	return db.QueryRow(`
		INSERT INTO staff (first_name, last_name, phone, email, role, monthly_salary, joined_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, CURRENT_DATE), true)
		RETURNING id, joined_at, created_at, updated_at`,
		s.FirstName, s.LastName, s.Phone, s.Email, s.Role, s.MonthlySalary,
		nullableDate(s.JoinedAt),
	).Scan(&s.ID, &s.JoinedAt, &s.CreatedAt, &s.UpdatedAt)
}

// UpdateStaff updates the editable staff fields.
func UpdateStaff(db *sql.DB, s *models.Staff) error {
	result, err := db.Exec(`
		UPDATE staff
		SET first_name = $1, last_name = $2, phone = $3, email = $4,
			role = $5, monthly_salary = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL`,
		s.FirstName, s.LastName, s.Phone, s.Email, s.Role, s.MonthlySalary, s.IsActive, s.ID)
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

// SoftDeleteStaff marks a staff member deleted and inactive.
func SoftDeleteStaff(db *sql.DB, id string) error {
	result, err := db.Exec(`
		UPDATE staff SET deleted_at = NOW(), is_active = false
		WHERE id = $1 AND deleted_at IS NULL`, id)
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
