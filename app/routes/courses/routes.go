package courses

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/models"
	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupCourseRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/courses")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error { return GetCoursesAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetCourseByIDAPI(c, db) })

	admin := auth.RequireRole(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error { return CreateCourseAPI(c, db) })
	api.Put("/:id", admin, func(c *fiber.Ctx) error { return UpdateCourseAPI(c, db) })
	api.Delete("/:id", admin, func(c *fiber.Ctx) error { return DeleteCourseAPI(c, db) })
}
