package attendance

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupAttendanceRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error { return GetAttendanceAPI(c, db) })
	api.Get("/stats/:studentId", func(c *fiber.Ctx) error { return GetAttendanceStatsAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return MarkAttendanceAPI(c, db) })
	api.Post("/bulk", func(c *fiber.Ctx) error { return MarkAttendanceBulkAPI(c, db) })
}
