package database

import (
	"database/sql"
	"fmt"

	"github.com/vinzencor/student-management/app/models"
)

// GetUserByEmail fetches an active user by email, password hash included.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT id, first_name, last_name, email, password, phone, is_active, created_at, updated_at
			  FROM users
			  WHERE email = $1 AND deleted_at IS NULL`

	u := &models.User{}
	err := db.QueryRow(query, email).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.Phone,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserRoles returns the roles assigned to a user.
func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `SELECT r.id, r.name, r.description, r.created_at
			  FROM roles r
			  JOIN user_roles ur ON ur.role_id = r.id
			  WHERE ur.user_id = $1
			  ORDER BY r.name`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []*models.Role{}
	for rows.Next() {
		r := &models.Role{}
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// CreateUser inserts a user with an already-hashed password and assigns the
// named role in the same transaction.
func CreateUser(db *sql.DB, user *models.User, roleName string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO users (first_name, last_name, email, password, phone, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, created_at, updated_at`,
		user.FirstName, user.LastName, user.Email, user.Password, user.Phone,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	if roleName != "" {
		var roleID string
		if err := tx.QueryRow(`SELECT id FROM roles WHERE name = $1`, roleName).Scan(&roleID); err != nil {
			return fmt.Errorf("find role %q: %w", roleName, err)
		}
		if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, roleID); err != nil {
			return fmt.Errorf("assign role: %w", err)
		}
	}

	return tx.Commit()
}

// UpdateUserPassword replaces a user's password hash.
func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	result, err := db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hashedPassword, userID)
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
