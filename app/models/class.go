package models

import "time"

// ClassSession represents a recurring scheduled class slot for a course.
type ClassSession struct {
	ID        string     `json:"id"`
	CourseID  string     `json:"course_id"`
	TutorID   string     `json:"tutor_id"`
	DayOfWeek DayOfWeek  `json:"day_of_week"`
	StartTime string     `json:"start_time"` // HH:MM, 24h
	EndTime   string     `json:"end_time"`   // HH:MM, 24h
	Room      *string    `json:"room,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	CourseName string `json:"course_name,omitempty"`
	TutorName  string `json:"tutor_name,omitempty"`
}
