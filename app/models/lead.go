package models

import "time"

// Lead represents an enquiry from a prospective student or parent.
type Lead struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Email        *string    `json:"email,omitempty"`
	Source       *string    `json:"source,omitempty"`
	CourseID     *string    `json:"course_id,omitempty"`
	Status       LeadStatus `json:"status"`
	Notes        *string    `json:"notes,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
	StudentID    *string    `json:"student_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`

	CourseName *string `json:"course_name,omitempty"`
}
