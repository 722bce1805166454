package reports

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupReportRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/reports")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RequireRole(models.RoleAdmin, models.RoleAccounts))

	api.Get("/outstanding-fees", func(c *fiber.Ctx) error { return GetOutstandingFeesReportAPI(c, db) })
	api.Get("/outstanding-fees/export", func(c *fiber.Ctx) error { return ExportOutstandingFeesAPI(c, db) })
	api.Get("/collections", func(c *fiber.Ctx) error { return GetCollectionsReportAPI(c, db) })
	api.Get("/collections/export", func(c *fiber.Ctx) error { return ExportCollectionsAPI(c, db) })
}

// GetOutstandingFeesReportAPI lists every open fee with the owing student.
func GetOutstandingFeesReportAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := database.GetOutstandingFees(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

// GetCollectionsReportAPI lists receipts over a payment-date range.
func GetCollectionsReportAPI(c *fiber.Ctx, db *sql.DB) error {
	receipts, err := database.GetReceipts(db, c.Query("student_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": receipts})
}
