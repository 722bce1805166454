package database

import (
	"database/sql"

	"github.com/vinzencor/student-management/app/models"
)

const courseColumns = `id, name, code, description, monthly_fee, duration_weeks,
		is_active, created_at, updated_at`

func scanCourse(row rowScanner) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Code, &c.Description, &c.MonthlyFee, &c.DurationWeeks,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCourses lists courses in the catalog, active first.
func GetCourses(db *sql.DB) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + `
			  FROM courses
			  WHERE deleted_at IS NULL
			  ORDER BY is_active DESC, name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourseByID returns a single course or sql.ErrNoRows.
func GetCourseByID(db *sql.DB, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 AND deleted_at IS NULL`
	return scanCourse(db.QueryRow(query, id))
}

// CreateCourse inserts a new course.
func CreateCourse(db *sql.DB, c *models.Course) error {
	return db.QueryRow(`
		INSERT INTO courses (name, code, description, monthly_fee, duration_weeks, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Code, c.Description, c.MonthlyFee, c.DurationWeeks,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// UpdateCourse updates the editable course fields.
func UpdateCourse(db *sql.DB, c *models.Course) error {
	result, err := db.Exec(`
		UPDATE courses
		SET name = $1, code = $2, description = $3, monthly_fee = $4,
			duration_weeks = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL`,
		c.Name, c.Code, c.Description, c.MonthlyFee, c.DurationWeeks, c.IsActive, c.ID)
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

// SoftDeleteCourse marks a course deleted.
func SoftDeleteCourse(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE courses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
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
