package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/vinzencor/student-management/app/config"
	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/logger"
	"github.com/vinzencor/student-management/app/routes/accounting"
	"github.com/vinzencor/student-management/app/routes/attendance"
	"github.com/vinzencor/student-management/app/routes/auth"
	"github.com/vinzencor/student-management/app/routes/classes"
	"github.com/vinzencor/student-management/app/routes/courses"
	"github.com/vinzencor/student-management/app/routes/dashboard"
	"github.com/vinzencor/student-management/app/routes/fees"
	"github.com/vinzencor/student-management/app/routes/leads"
	"github.com/vinzencor/student-management/app/routes/payments"
	"github.com/vinzencor/student-management/app/routes/reports"
	"github.com/vinzencor/student-management/app/routes/staff"
	"github.com/vinzencor/student-management/app/routes/students"
	"github.com/vinzencor/student-management/app/services"
)

// errorHandler renders every error as the standard JSON envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := config.InitDB(log); err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Scheduler.Enabled {
		mailer := services.NewMailer(cfg.Mail, log)
		services.NewScheduler(db, mailer, log, cfg).Start(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      "student-management",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable")
		}
		return c.JSON(fiber.Map{"success": true})
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app, db)
	leads.SetupLeadRoutes(app, db)
	students.SetupStudentRoutes(app, db)
	staff.SetupStaffRoutes(app, db)
	courses.SetupCourseRoutes(app, db)
	classes.SetupClassRoutes(app, db)
	attendance.SetupAttendanceRoutes(app, db)
	fees.SetupFeesRoutes(app, db)
	payments.SetupPaymentRoutes(app, log)
	accounting.SetupAccountingRoutes(app, db)
	reports.SetupReportRoutes(app, db)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "not found")
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.Info("server starting", zap.String("address", cfg.Server.Address))
	if err := app.Listen(cfg.Server.Address); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
