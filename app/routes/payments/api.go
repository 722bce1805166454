package payments

import (
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vinzencor/student-management/app/config"
	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/ledger"
)

var validate = validator.New()

// Handler carries the payment application pipeline. The ledger owns the
// fee-selection and receipt semantics; this layer only translates HTTP.
type Handler struct {
	Ledger *ledger.Ledger
}

type recordPaymentRequest struct {
	StudentID   string          `json:"student_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD, defaults to today
	Method      string          `json:"method" validate:"required,oneof=cash card upi bank_transfer cheque"`
	Description string          `json:"description"`
}

// RecordPaymentAPI applies a received payment to the student's oldest open
// obligation (or records it as a settled ad hoc fee) and issues a receipt.
func (h *Handler) RecordPaymentAPI(c *fiber.Ctx) error {
	var req recordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "student_id and a valid method are required")
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	event := ledger.PaymentEvent{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		Date:        date,
		Method:      req.Method,
		Description: req.Description,
	}

	fee, receipt, err := h.Ledger.ApplyPayment(c.Context(), event)
	if err != nil {
		var issuance *ledger.ReceiptIssuanceError
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInvalidStudent):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, ledger.ErrNotFound):
			return fiber.NewError(fiber.StatusConflict,
				"the fee changed while the payment was being applied; please retry")
		case errors.As(err, &issuance):
			// The fee was updated. Report a partial success so the terminal
			// does not re-submit the same cash.
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success":        false,
				"receipt_issued": false,
				"error":          "payment recorded but receipt issuance failed",
				"data":           fiber.Map{"fee": issuance.Fee},
			})
		default:
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        true,
		"receipt_issued": true,
		"data": fiber.Map{
			"fee":     fee,
			"receipt": receipt,
		},
	})
}

// GetReceiptsAPI lists issued receipts, newest first. Filters: student_id,
// from, to (payment date, YYYY-MM-DD).
func GetReceiptsAPI(c *fiber.Ctx) error {
	receipts, err := database.GetReceipts(config.GetDB(),
		c.Query("student_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": receipts})
}

// GetReceiptByNumberAPI looks up a single receipt for reprinting.
func GetReceiptByNumberAPI(c *fiber.Ctx) error {
	receipt, err := database.GetReceiptByNumber(config.GetDB(), c.Params("number"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "receipt not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": receipt})
}
