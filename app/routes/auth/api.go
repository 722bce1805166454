package auth

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/config"
	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
)

var validate = validator.New()

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if !user.IsActive || !CheckPasswordHash(req.Password, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	roles, err := database.GetUserRoles(config.GetDB(), user.ID)
	if err != nil {
		return err
	}
	user.Roles = roles

	roleNames := make([]string, len(roles))
	for i, role := range roles {
		roleNames[i] = role.Name
	}

	token, err := GenerateJWT(user.ID, user.Email, user.FirstName, user.LastName, roleNames)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(jwtTTL()),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token": token,
			"user":  user,
		},
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"success": true})
}

func MeAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.JSON(fiber.Map{"success": true, "data": user})
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "new password must be at least 8 characters")
	}

	user, err := database.GetUserByEmail(config.GetDB(), c.Locals("user_email").(string))
	if err != nil {
		return err
	}

	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "current password is incorrect")
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := database.UpdateUserPassword(config.GetDB(), user.ID, hashed); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

// CreateUserAPI provisions a login account with a role. Admin only.
func CreateUserAPI(c *fiber.Ctx) error {
	type CreateUserRequest struct {
		FirstName string  `json:"first_name" validate:"required"`
		LastName  string  `json:"last_name" validate:"required"`
		Email     string  `json:"email" validate:"required,email"`
		Password  string  `json:"password" validate:"required,min=8"`
		Phone     *string `json:"phone"`
		Role      string  `json:"role" validate:"required,oneof=admin accounts front_desk tutor"`
	}

	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user details: "+err.Error())
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		Phone:     req.Phone,
		IsActive:  true,
	}

	if err := database.CreateUser(config.GetDB(), user, req.Role); err != nil {
		return err
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
}
