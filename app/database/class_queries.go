package database

import (
	"database/sql"
	"fmt"

	"github.com/vinzencor/student-management/app/models"
)

const classColumns = `cs.id, cs.course_id, cs.tutor_id, cs.day_of_week, cs.start_time,
		cs.end_time, cs.room, cs.is_active, cs.created_at, cs.updated_at,
		c.name, st.first_name || ' ' || st.last_name`

func scanClass(row rowScanner) (*models.ClassSession, error) {
	cs := &models.ClassSession{}
	err := row.Scan(
		&cs.ID, &cs.CourseID, &cs.TutorID, &cs.DayOfWeek, &cs.StartTime,
		&cs.EndTime, &cs.Room, &cs.IsActive, &cs.CreatedAt, &cs.UpdatedAt,
		&cs.CourseName, &cs.TutorName,
	)
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// GetClassSessions lists scheduled sessions, optionally filtered by weekday
// or tutor, in timetable order.
func GetClassSessions(db *sql.DB, day models.DayOfWeek, tutorID string) ([]*models.ClassSession, error) {
	query := `SELECT ` + classColumns + `
			  FROM class_sessions cs
			  JOIN courses c ON cs.course_id = c.id
			  JOIN staff st ON cs.tutor_id = st.id
			  WHERE cs.deleted_at IS NULL`

	var args []interface{}
	if day != "" {
		args = append(args, day)
		query += fmt.Sprintf(" AND cs.day_of_week = $%d", len(args))
	}
	if tutorID != "" {
		args = append(args, tutorID)
		query += fmt.Sprintf(" AND cs.tutor_id = $%d", len(args))
	}
	query += ` ORDER BY CASE cs.day_of_week
				WHEN 'monday' THEN 1 WHEN 'tuesday' THEN 2 WHEN 'wednesday' THEN 3
				WHEN 'thursday' THEN 4 WHEN 'friday' THEN 5 WHEN 'saturday' THEN 6
				ELSE 7 END, cs.start_time`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*models.ClassSession{}
	for rows.Next() {
		cs, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, cs)
	}
	return sessions, rows.Err()
}

// GetClassSessionByID returns a single session or sql.ErrNoRows.
func GetClassSessionByID(db *sql.DB, id string) (*models.ClassSession, error) {
	query := `SELECT ` + classColumns + `
			  FROM class_sessions cs
			  JOIN courses c ON cs.course_id = c.id
			  JOIN staff st ON cs.tutor_id = st.id
			  WHERE cs.id = $1 AND cs.deleted_at IS NULL`
	return scanClass(db.QueryRow(query, id))
}

// CreateClassSession inserts a new scheduled session.
func CreateClassSession(db *sql.DB, cs *models.ClassSession) error {
	return db.QueryRow(`
		INSERT INTO class_sessions (course_id, tutor_id, day_of_week, start_time, end_time, room, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id, created_at, updated_at`,
		cs.CourseID, cs.TutorID, cs.DayOfWeek, cs.StartTime, cs.EndTime, cs.Room,
	).Scan(&cs.ID, &cs.CreatedAt, &cs.UpdatedAt)
}

// UpdateClassSession updates the editable session fields.
func UpdateClassSession(db *sql.DB, cs *models.ClassSession) error {
	result, err := db.Exec(`
		UPDATE class_sessions
		SET course_id = $1, tutor_id = $2, day_of_week = $3, start_time = $4,
			end_time = $5, room = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL`,
		cs.CourseID, cs.TutorID, cs.DayOfWeek, cs.StartTime, cs.EndTime, cs.Room, cs.IsActive, cs.ID)
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

// SoftDeleteClassSession marks a session deleted.
func SoftDeleteClassSession(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE class_sessions SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
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
