package courses

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
)

type courseRequest struct {
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Description   *string         `json:"description"`
	MonthlyFee    decimal.Decimal `json:"monthly_fee"`
	DurationWeeks *int            `json:"duration_weeks"`
	IsActive      *bool           `json:"is_active"`
}

func (r *courseRequest) toModel() (*models.Course, error) {
	if r.Name == "" || r.Code == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "name and code are required")
	}
	if r.MonthlyFee.IsNegative() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "monthly_fee cannot be negative")
	}

	course := &models.Course{
		Name:          r.Name,
		Code:          r.Code,
		Description:   r.Description,
		MonthlyFee:    r.MonthlyFee,
		DurationWeeks: r.DurationWeeks,
		IsActive:      true,
	}
	if r.IsActive != nil {
		course.IsActive = *r.IsActive
	}
	return course, nil
}

func GetCoursesAPI(c *fiber.Ctx, db *sql.DB) error {
	courses, err := database.GetCourses(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": courses})
}

func GetCourseByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	course, err := database.GetCourseByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "course not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": course})
}

func CreateCourseAPI(c *fiber.Ctx, db *sql.DB) error {
	var req courseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	course, err := req.toModel()
	if err != nil {
		return err
	}

	if err := database.CreateCourse(db, course); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": course})
}

func UpdateCourseAPI(c *fiber.Ctx, db *sql.DB) error {
	var req courseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	course, err := req.toModel()
	if err != nil {
		return err
	}
	course.ID = c.Params("id")

	if err := database.UpdateCourse(db, course); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "course not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": course})
}

func DeleteCourseAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.SoftDeleteCourse(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "course not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
