package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	grp := app.Group("/api/auth")

	grp.Post("/login", LoginAPI)
	grp.Post("/logout", LogoutAPI)

	grp.Use(AuthMiddleware)
	grp.Get("/me", MeAPI)
	grp.Post("/change-password", ChangePasswordAPI)
	grp.Post("/users", RequireRole(models.RoleAdmin), CreateUserAPI)
}

// AuthMiddleware validates the JWT from the Authorization header or cookie
// and stores the authenticated user in the request context.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	roles := make([]*models.Role, len(claims.Roles))
	for i, name := range claims.Roles {
		roles[i] = &models.Role{Name: name}
	}

	user := &models.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		IsActive:  true,
		Roles:     roles,
	}

	c.Locals("user_id", user.ID)
	c.Locals("user_email", user.Email)
	c.Locals("user", user)

	return c.Next()
}

// RequireRole rejects requests from users carrying none of the allowed roles.
// Runs after AuthMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}
		for _, role := range allowed {
			if user.HasRole(role) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}
}
