package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vinzencor/student-management/app/models"
)

const attendanceColumns = `a.id, a.student_id, a.class_id, a.date, a.status, a.notes,
		a.marked_by, a.created_at, a.updated_at,
		s.first_name || ' ' || s.last_name, c.name`

func scanAttendance(row rowScanner) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := row.Scan(
		&a.ID, &a.StudentID, &a.ClassID, &a.Date, &a.Status, &a.Notes,
		&a.MarkedBy, &a.CreatedAt, &a.UpdatedAt,
		&a.StudentName, &a.ClassName,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// MarkAttendance records or corrects a student's mark for a class on a date.
// Re-marking the same student/class/date overwrites the previous status.
func MarkAttendance(db *sql.DB, a *models.Attendance) error {
	return db.QueryRow(`
		INSERT INTO attendance (student_id, class_id, date, status, notes, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, class_id, date)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes,
			marked_by = EXCLUDED.marked_by, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		a.StudentID, a.ClassID, a.Date, a.Status, a.Notes, a.MarkedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// MarkAttendanceBulk records marks for a whole class roster in one transaction.
func MarkAttendanceBulk(db *sql.DB, marks []*models.Attendance) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO attendance (student_id, class_id, date, status, notes, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, class_id, date)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes,
			marked_by = EXCLUDED.marked_by, updated_at = NOW()`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range marks {
		if _, err := stmt.Exec(a.StudentID, a.ClassID, a.Date, a.Status, a.Notes, a.MarkedBy); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetAttendance lists marks filtered by class, student and/or date range.
func GetAttendance(db *sql.DB, classID, studentID string, from, to *time.Time) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance a
			  JOIN students s ON a.student_id = s.id
			  JOIN class_sessions cs ON a.class_id = cs.id
			  JOIN courses c ON cs.course_id = c.id
			  WHERE 1=1`

	var args []interface{}
	if classID != "" {
		args = append(args, classID)
		query += fmt.Sprintf(" AND a.class_id = $%d", len(args))
	}
	if studentID != "" {
		args = append(args, studentID)
		query += fmt.Sprintf(" AND a.student_id = $%d", len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND a.date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND a.date <= $%d", len(args))
	}
	query += ` ORDER BY a.date DESC, s.first_name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := []*models.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		marks = append(marks, a)
	}
	return marks, rows.Err()
}

// GetAttendanceStats summarises a student's marks over a date range.
func GetAttendanceStats(db *sql.DB, studentID string, from, to *time.Time) (*models.AttendanceStats, error) {
	query := `SELECT COUNT(*),
				COUNT(*) FILTER (WHERE status = 'present'),
				COUNT(*) FILTER (WHERE status = 'absent'),
				COUNT(*) FILTER (WHERE status = 'late'),
				COUNT(*) FILTER (WHERE status = 'excused')
			  FROM attendance
			  WHERE student_id = $1`

	args := []interface{}{studentID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	stats := &models.AttendanceStats{}
	err := db.QueryRow(query, args...).Scan(&stats.Total, &stats.Present, &stats.Absent, &stats.Late, &stats.Excused)
	if err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		attended := stats.Present + stats.Late
		stats.Rate = float64(attended) / float64(stats.Total) * 100
	}
	return stats, nil
}
