package fees

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vinzencor/student-management/app/database"
)

// ApplyFeesAPI bills a fee type to a batch of students, e.g. monthly tuition
// to every enrolled student. Each student gets an independent pending fee.
func ApplyFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	type ApplyFeesRequest struct {
		FeeTypeID  string          `json:"fee_type_id"`
		StudentIDs []string        `json:"student_ids"`
		Amount     decimal.Decimal `json:"amount"` // optional, defaults to the type's default
		DueDate    string          `json:"due_date"`
	}

	var req ApplyFeesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.FeeTypeID == "" || len(req.StudentIDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "fee_type_id and student_ids are required")
	}
	if _, err := time.Parse("2006-01-02", req.DueDate); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
	}

	feeType, err := database.GetFeeTypeByID(db, req.FeeTypeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "fee type not found")
		}
		return err
	}
	if !feeType.IsActive {
		return fiber.NewError(fiber.StatusBadRequest, "fee type is inactive")
	}

	amount := req.Amount
	if amount.IsZero() {
		amount = feeType.DefaultAmount
	}
	if !amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	applied, err := database.ApplyFeeToStudents(db, feeType, req.StudentIDs, amount, req.DueDate)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"applied":  applied,
			"fee_type": feeType.Name,
			"amount":   amount,
		},
	})
}
