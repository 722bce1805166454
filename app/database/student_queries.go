package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vinzencor/student-management/app/models"
)

// nullableDate passes NULL for a zero time so column defaults apply.
func nullableDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

const studentColumns = `s.id, s.admission_no, s.first_name, s.last_name, s.gender,
		s.date_of_birth, s.phone, s.email, s.guardian_name, s.guardian_phone, s.address,
		s.course_id, s.enrolled_at, s.is_active, s.created_at, s.updated_at, c.name`

func scanStudent(row rowScanner) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.AdmissionNo, &s.FirstName, &s.LastName, &s.Gender,
		&s.DateOfBirth, &s.Phone, &s.Email, &s.GuardianName, &s.GuardianPhone, &s.Address,
		&s.CourseID, &s.EnrolledAt, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.CourseName,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStudents lists active students, optionally matching a name/admission-no
// search, with limit/offset pagination.
func GetStudents(db *sql.DB, search string, limit, offset int) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + `
			  FROM students s
			  LEFT JOIN courses c ON s.course_id = c.id
			  WHERE s.deleted_at IS NULL AND s.is_active = true`

	var args []interface{}
	if search != "" {
		pattern := "%" + search + "%"
		args = append(args, pattern)
		n := len(args)
		query += fmt.Sprintf(` AND (s.admission_no ILIKE $%d
			OR s.first_name ILIKE $%d OR s.last_name ILIKE $%d
			OR s.first_name || ' ' || s.last_name ILIKE $%d)`, n, n, n, n)
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY s.first_name, s.last_name LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetStudentByID returns a single student or sql.ErrNoRows.
func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + `
			  FROM students s
			  LEFT JOIN courses c ON s.course_id = c.id
			  WHERE s.id = $1 AND s.deleted_at IS NULL`
	return scanStudent(db.QueryRow(query, id))
}

// CreateStudent inserts a new student record.
func CreateStudent(db *sql.DB, s *models.Student) error {
	return db.QueryRow(`
		INSERT INTO students (admission_no, first_name, last_name, gender, date_of_birth,
			phone, email, guardian_name, guardian_phone, address, course_id, enrolled_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, COALESCE($12, CURRENT_DATE), true)
		RETURNING id, enrolled_at, created_at, updated_at`,
		s.AdmissionNo, s.FirstName, s.LastName, s.Gender, s.DateOfBirth,
		s.Phone, s.Email, s.GuardianName, s.GuardianPhone, s.Address, s.CourseID,
		nullableDate(s.EnrolledAt),
	).Scan(&s.ID, &s.EnrolledAt, &s.CreatedAt, &s.UpdatedAt)
}

// UpdateStudent updates the editable student fields.
func UpdateStudent(db *sql.DB, s *models.Student) error {
	result, err := db.Exec(`
		UPDATE students
		SET first_name = $1, last_name = $2, gender = $3, date_of_birth = $4,
			phone = $5, email = $6, guardian_name = $7, guardian_phone = $8,
			address = $9, course_id = $10, is_active = $11, updated_at = NOW()
		WHERE id = $12 AND deleted_at IS NULL`,
		s.FirstName, s.LastName, s.Gender, s.DateOfBirth,
		s.Phone, s.Email, s.GuardianName, s.GuardianPhone,
		s.Address, s.CourseID, s.IsActive, s.ID)
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

// SoftDeleteStudent marks a student deleted and inactive.
func SoftDeleteStudent(db *sql.DB, id string) error {
	result, err := db.Exec(`
		UPDATE students SET deleted_at = NOW(), is_active = false
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
