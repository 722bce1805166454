package payments

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vinzencor/student-management/app/config"
	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/ledger"
	"github.com/vinzencor/student-management/app/models"
	"github.com/vinzencor/student-management/app/routes/auth"
)

func SetupPaymentRoutes(app *fiber.App, log *zap.Logger) {
	db := config.GetDB()
	lgr := ledger.New(database.NewFeeRepo(db), database.NewReceiptRepo(db), log)
	h := &Handler{Ledger: lgr}

	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RequireRole(models.RoleAdmin, models.RoleAccounts, models.RoleFrontDesk))
	api.Post("/", h.RecordPaymentAPI)
	api.Get("/receipts", GetReceiptsAPI)
	api.Get("/receipts/:number", GetReceiptByNumberAPI)
}
