package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)

	api.Get("/stats", func(c *fiber.Ctx) error { return GetStatsAPI(c, db) })
}

// GetStatsAPI returns the landing-page aggregates: headcounts, this month's
// money in and out, outstanding fees and attendance.
func GetStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetDashboardStats(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
