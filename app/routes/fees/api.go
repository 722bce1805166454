package fees

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
)

// GetFeesAPI lists fees, optionally filtered by student_id and status.
func GetFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	status := models.FeeStatus(c.Query("status"))
	if status != "" && status != models.FeePending && status != models.FeePartial && status != models.FeePaid {
		return fiber.NewError(fiber.StatusBadRequest, "status must be pending, partial or paid")
	}

	fees, err := database.GetFees(db, c.Query("student_id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fees})
}

func GetFeeByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	fee, err := database.GetFeeByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "fee not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fee})
}

// CreateFeeAPI bills a single charge to one student. Payments against it go
// through /api/payments, never through a fee update.
func CreateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateFeeRequest struct {
		StudentID string          `json:"student_id"`
		FeeTypeID *string         `json:"fee_type_id"`
		Title     string          `json:"title"`
		Amount    decimal.Decimal `json:"amount"`
		DueDate   string          `json:"due_date"`
	}

	var req CreateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.StudentID == "" || req.Title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student_id and title are required")
	}
	if !req.Amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
	}

	fee := &models.Fee{
		StudentID:   req.StudentID,
		FeeTypeID:   req.FeeTypeID,
		Title:       req.Title,
		TotalAmount: req.Amount,
		PaidAmount:  decimal.Zero,
		Status:      models.FeePending,
		DueDate:     dueDate,
	}

	repo := database.NewFeeRepo(db)
	created, err := repo.Create(c.Context(), fee)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

func DeleteFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.SoftDeleteFee(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "fee not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func GetFeeStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetFeeStats(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

func GetOutstandingFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := database.GetOutstandingFees(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}
