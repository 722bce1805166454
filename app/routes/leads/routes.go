package leads

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupLeadRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/leads")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error { return GetLeadsAPI(c, db) })
	api.Get("/follow-ups", func(c *fiber.Ctx) error { return GetFollowUpsAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetLeadByIDAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateLeadAPI(c, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateLeadAPI(c, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteLeadAPI(c, db) })
	api.Post("/:id/convert", func(c *fiber.Ctx) error { return ConvertLeadAPI(c, db) })
}
