package accounting

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/models"
	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupAccountingRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/accounting")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RequireRole(models.RoleAdmin, models.RoleAccounts))

	api.Get("/categories", func(c *fiber.Ctx) error { return GetCategoriesAPI(c, db) })
	api.Post("/categories", func(c *fiber.Ctx) error { return CreateCategoryAPI(c, db) })
	api.Get("/transactions", func(c *fiber.Ctx) error { return GetTransactionsAPI(c, db) })
	api.Post("/transactions", func(c *fiber.Ctx) error { return CreateTransactionAPI(c, db) })
	api.Delete("/transactions/:id", func(c *fiber.Ctx) error { return DeleteTransactionAPI(c, db) })
	api.Get("/summary", func(c *fiber.Ctx) error { return GetPeriodSummariesAPI(c, db) })
}
