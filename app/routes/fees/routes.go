package fees

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/models"
	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupFeesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/fees")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error { return GetFeesAPI(c, db) })
	api.Get("/stats", func(c *fiber.Ctx) error { return GetFeeStatsAPI(c, db) })
	api.Get("/outstanding", func(c *fiber.Ctx) error { return GetOutstandingFeesAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetFeeByIDAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateFeeAPI(c, db) })
	api.Post("/apply", auth.RequireRole(models.RoleAdmin, models.RoleAccounts),
		func(c *fiber.Ctx) error { return ApplyFeesAPI(c, db) })
	api.Delete("/:id", auth.RequireRole(models.RoleAdmin, models.RoleAccounts),
		func(c *fiber.Ctx) error { return DeleteFeeAPI(c, db) })

	typesAPI := app.Group("/api/fee-types")
	typesAPI.Use(auth.AuthMiddleware)

	typesAPI.Get("/", func(c *fiber.Ctx) error { return GetFeeTypesAPI(c, db) })
	typesAPI.Get("/:id", func(c *fiber.Ctx) error { return GetFeeTypeAPI(c, db) })
	typesAPI.Post("/", auth.RequireRole(models.RoleAdmin, models.RoleAccounts),
		func(c *fiber.Ctx) error { return CreateFeeTypeAPI(c, db) })
	typesAPI.Put("/:id", auth.RequireRole(models.RoleAdmin, models.RoleAccounts),
		func(c *fiber.Ctx) error { return UpdateFeeTypeAPI(c, db) })
	typesAPI.Delete("/:id", auth.RequireRole(models.RoleAdmin, models.RoleAccounts),
		func(c *fiber.Ctx) error { return DeleteFeeTypeAPI(c, db) })
}
