package models

import "time"

// Attendance represents a single student's attendance mark for a class
// session on a given date.
type Attendance struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	ClassID   string           `json:"class_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
	Notes     *string          `json:"notes,omitempty"`
	MarkedBy  *string          `json:"marked_by,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	StudentName string `json:"student_name,omitempty"`
	ClassName   string `json:"class_name,omitempty"`
}

// AttendanceStats summarises attendance over a period.
type AttendanceStats struct {
	Total   int     `json:"total"`
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Excused int     `json:"excused"`
	Rate    float64 `json:"rate"`
}
