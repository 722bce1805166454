package database

import (
	"database/sql"
	"fmt"

	"github.com/vinzencor/student-management/app/models"
)

const leadColumns = `l.id, l.name, l.phone, l.email, l.source, l.course_id, l.status,
		l.notes, l.follow_up_date, l.student_id, l.created_at, l.updated_at, c.name`

func scanLead(row rowScanner) (*models.Lead, error) {
	l := &models.Lead{}
	err := row.Scan(
		&l.ID, &l.Name, &l.Phone, &l.Email, &l.Source, &l.CourseID, &l.Status,
		&l.Notes, &l.FollowUpDate, &l.StudentID, &l.CreatedAt, &l.UpdatedAt, &l.CourseName,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetLeads lists leads newest first, optionally filtered by pipeline status.
func GetLeads(db *sql.DB, status models.LeadStatus) ([]*models.Lead, error) {
	query := `SELECT ` + leadColumns + `
			  FROM leads l
			  LEFT JOIN courses c ON l.course_id = c.id
			  WHERE l.deleted_at IS NULL`

	var args []interface{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// GetLeadByID returns a single lead or sql.ErrNoRows.
func GetLeadByID(db *sql.DB, id string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + `
			  FROM leads l
			  LEFT JOIN courses c ON l.course_id = c.id
			  WHERE l.id = $1 AND l.deleted_at IS NULL`
	return scanLead(db.QueryRow(query, id))
}

// CreateLead inserts a new enquiry in status "new" unless a status is given.
func CreateLead(db *sql.DB, lead *models.Lead) error {
	if lead.Status == "" {
		lead.Status = models.LeadNew
	}
	return db.QueryRow(`
		INSERT INTO leads (name, phone, email, source, course_id, status, notes, follow_up_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		lead.Name, lead.Phone, lead.Email, lead.Source, lead.CourseID,
		lead.Status, lead.Notes, lead.FollowUpDate,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

// UpdateLead updates the editable lead fields.
func UpdateLead(db *sql.DB, lead *models.Lead) error {
	result, err := db.Exec(`
		UPDATE leads
		SET name = $1, phone = $2, email = $3, source = $4, course_id = $5,
			status = $6, notes = $7, follow_up_date = $8, updated_at = NOW()
		WHERE id = $9 AND deleted_at IS NULL`,
		lead.Name, lead.Phone, lead.Email, lead.Source, lead.CourseID,
		lead.Status, lead.Notes, lead.FollowUpDate, lead.ID)
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

// SoftDeleteLead marks a lead deleted.
func SoftDeleteLead(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE leads SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
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

// ConvertLead enrolls the lead as a student and marks the lead converted, in
// one transaction so a half-converted lead cannot exist.
func ConvertLead(db *sql.DB, leadID string, student *models.Student) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status models.LeadStatus
	if err := tx.QueryRow(`SELECT status FROM leads WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, leadID).Scan(&status); err != nil {
		return fmt.Errorf("lock lead: %w", err)
	}
	if status == models.LeadConverted {
		return fmt.Errorf("lead %s already converted", leadID)
	}

	err = tx.QueryRow(`
		INSERT INTO students (admission_no, first_name, last_name, gender, phone, email,
			guardian_name, guardian_phone, address, course_id, enrolled_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_DATE, true)
		RETURNING id, enrolled_at, created_at, updated_at`,
		student.AdmissionNo, student.FirstName, student.LastName, student.Gender,
		student.Phone, student.Email, student.GuardianName, student.GuardianPhone,
		student.Address, student.CourseID,
	).Scan(&student.ID, &student.EnrolledAt, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE leads SET status = $1, student_id = $2, updated_at = NOW() WHERE id = $3`,
		models.LeadConverted, student.ID, leadID)
	if err != nil {
		return fmt.Errorf("mark lead converted: %w", err)
	}

	return tx.Commit()
}

// GetLeadsDueForFollowUp returns open leads whose follow-up date has arrived.
func GetLeadsDueForFollowUp(db *sql.DB) ([]*models.Lead, error) {
	query := `SELECT ` + leadColumns + `
			  FROM leads l
			  LEFT JOIN courses c ON l.course_id = c.id
			  WHERE l.deleted_at IS NULL
				AND l.status IN ('new', 'contacted', 'trial')
				AND l.follow_up_date IS NOT NULL AND l.follow_up_date <= CURRENT_DATE
			  ORDER BY l.follow_up_date ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
