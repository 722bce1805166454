package models

import "time"

// Role names known to the application. Accounting and staff management are
// restricted to admins; the front desk records payments and attendance.
const (
	RoleAdmin     = "admin"
	RoleAccounts  = "accounts"
	RoleFrontDesk = "front_desk"
	RoleTutor     = "tutor"
)

// Role represents a named permission group.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserRole links a user to a role.
type UserRole struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}
