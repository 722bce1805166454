package staff

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
)

type staffRequest struct {
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email"`
	Role          string          `json:"role"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	JoinedAt      *string         `json:"joined_at"` // YYYY-MM-DD
	IsActive      *bool           `json:"is_active"`
}

func (r *staffRequest) toModel() (*models.Staff, error) {
	if r.FirstName == "" || r.LastName == "" || r.Phone == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "first_name, last_name and phone are required")
	}
	if r.MonthlySalary.IsNegative() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "monthly_salary cannot be negative")
	}

	s := &models.Staff{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Phone:         r.Phone,
		Email:         r.Email,
		Role:          r.Role,
		MonthlySalary: r.MonthlySalary,
		IsActive:      true,
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	if r.JoinedAt != nil && *r.JoinedAt != "" {
		joined, err := time.Parse("2006-01-02", *r.JoinedAt)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "joined_at must be YYYY-MM-DD")
		}
		s.JoinedAt = joined
	}
	return s, nil
}

func GetStaffAPI(c *fiber.Ctx, db *sql.DB) error {
	staff, err := database.GetStaff(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": staff})
}

func GetStaffByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	s, err := database.GetStaffByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "staff member not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": s})
}

func CreateStaffAPI(c *fiber.Ctx, db *sql.DB) error {
	var req staffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	s, err := req.toModel()
	if err != nil {
		return err
	}

	if err := database.CreateStaff(db, s); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": s})
}

func UpdateStaffAPI(c *fiber.Ctx, db *sql.DB) error {
	var req staffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	s, err := req.toModel()
	if err != nil {
		return err
	}
	s.ID = c.Params("id")

	if err := database.UpdateStaff(db, s); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "staff member not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": s})
}

func DeleteStaffAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.SoftDeleteStaff(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "staff member not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// PaySalaryAPI disburses a salary for a period. Along with the payment record
// it books a matching expense transaction.
func PaySalaryAPI(c *fiber.Ctx, db *sql.DB) error {
	type PaySalaryRequest struct {
		Amount      decimal.Decimal `json:"amount"` // optional, defaults to monthly salary
		PeriodStart string          `json:"period_start"`
		PeriodEnd   string          `json:"period_end"`
		Reference   *string         `json:"reference"`
		Notes       *string         `json:"notes"`
	}

	var req PaySalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	start, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "period_start must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "period_end must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return fiber.NewError(fiber.StatusBadRequest, "period_end is before period_start")
	}

	member, err := database.GetStaffByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "staff member not found")
		}
		return err
	}

	amount := req.Amount
	if amount.IsZero() {
		amount = member.MonthlySalary
	}
	if !amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	payment := &models.SalaryPayment{
		StaffID:     member.ID,
		Amount:      amount,
		PeriodStart: start,
		PeriodEnd:   end,
		Reference:   req.Reference,
		Notes:       req.Notes,
		PaidAt:      time.Now(),
	}

	if err := database.PaySalary(db, payment); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payment})
}

func GetSalaryPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	payments, err := database.GetSalaryPayments(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": payments})
}
