package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/models"
	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupClassRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error { return GetClassesAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetClassByIDAPI(c, db) })

	admin := auth.RequireRole(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error { return CreateClassAPI(c, db) })
	api.Put("/:id", admin, func(c *fiber.Ctx) error { return UpdateClassAPI(c, db) })
	api.Delete("/:id", admin, func(c *fiber.Ctx) error { return DeleteClassAPI(c, db) })
}
