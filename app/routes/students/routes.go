package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupStudentRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error { return GetStudentsAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetStudentByIDAPI(c, db) })
	api.Get("/:id/fees", func(c *fiber.Ctx) error { return GetStudentFeesAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateStudentAPI(c, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateStudentAPI(c, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteStudentAPI(c, db) })
}
