package models

import "time"

// Student represents an enrolled student.
type Student struct {
	ID             string     `json:"id"`
	AdmissionNo    string     `json:"admission_no"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Gender         Gender     `json:"gender"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Email          *string    `json:"email,omitempty"`
	GuardianName   *string    `json:"guardian_name,omitempty"`
	GuardianPhone  *string    `json:"guardian_phone,omitempty"`
	Address        *string    `json:"address,omitempty"`
	CourseID       *string    `json:"course_id,omitempty"`
	EnrolledAt     time.Time  `json:"enrolled_at"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`

	CourseName *string `json:"course_name,omitempty"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
