package staff

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/models"
	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupStaffRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/staff")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RequireRole(models.RoleAdmin))

	api.Get("/", func(c *fiber.Ctx) error { return GetStaffAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetStaffByIDAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateStaffAPI(c, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateStaffAPI(c, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteStaffAPI(c, db) })
	api.Post("/:id/pay-salary", func(c *fiber.Ctx) error { return PaySalaryAPI(c, db) })
	api.Get("/:id/salary-payments", func(c *fiber.Ctx) error { return GetSalaryPaymentsAPI(c, db) })
}
