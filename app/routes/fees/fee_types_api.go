package fees

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
)

func GetFeeTypesAPI(c *fiber.Ctx, db *sql.DB) error {
	types, err := database.GetFeeTypes(db, c.QueryBool("active_only"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": types})
}

func GetFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	ft, err := database.GetFeeTypeByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "fee type not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": ft})
}

type feeTypeRequest struct {
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Description   *string         `json:"description"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
	IsActive      *bool           `json:"is_active"`
}

func (r *feeTypeRequest) validate() error {
	if r.Name == "" || r.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and code are required")
	}
	if r.DefaultAmount.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "default_amount cannot be negative")
	}
	return nil
}

func CreateFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req feeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	ft := &models.FeeType{
		Name:          req.Name,
		Code:          req.Code,
		Description:   req.Description,
		DefaultAmount: req.DefaultAmount,
		IsActive:      true,
	}
	if req.IsActive != nil {
		ft.IsActive = *req.IsActive
	}

	if err := database.CreateFeeType(db, ft); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": ft})
}

func UpdateFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req feeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	ft := &models.FeeType{
		ID:            c.Params("id"),
		Name:          req.Name,
		Code:          req.Code,
		Description:   req.Description,
		DefaultAmount: req.DefaultAmount,
		IsActive:      true,
	}
	if req.IsActive != nil {
		ft.IsActive = *req.IsActive
	}

	if err := database.UpdateFeeType(db, ft); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "fee type not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": ft})
}

func DeleteFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.SoftDeleteFeeType(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "fee type not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
