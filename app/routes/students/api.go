package students

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
)

type studentRequest struct {
	AdmissionNo   string  `json:"admission_no"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Gender        string  `json:"gender"`
	DateOfBirth   *string `json:"date_of_birth"` // YYYY-MM-DD
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	GuardianName  *string `json:"guardian_name"`
	GuardianPhone *string `json:"guardian_phone"`
	Address       *string `json:"address"`
	CourseID      *string `json:"course_id"`
	EnrolledAt    *string `json:"enrolled_at"` // YYYY-MM-DD
	IsActive      *bool   `json:"is_active"`
}

func (r *studentRequest) toModel() (*models.Student, error) {
	if r.FirstName == "" || r.LastName == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "first_name and last_name are required")
	}

	s := &models.Student{
		AdmissionNo:   r.AdmissionNo,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Gender:        models.Gender(r.Gender),
		Phone:         r.Phone,
		Email:         r.Email,
		GuardianName:  r.GuardianName,
		GuardianPhone: r.GuardianPhone,
		Address:       r.Address,
		CourseID:      r.CourseID,
		IsActive:      true,
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}

	if r.DateOfBirth != nil && *r.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", *r.DateOfBirth)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		}
		s.DateOfBirth = &dob
	}
	if r.EnrolledAt != nil && *r.EnrolledAt != "" {
		enrolled, err := time.Parse("2006-01-02", *r.EnrolledAt)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "enrolled_at must be YYYY-MM-DD")
		}
		s.EnrolledAt = enrolled
	}
	return s, nil
}

// GetStudentsAPI lists active students with search and pagination.
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	students, err := database.GetStudents(db, c.Query("search"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": students})
}

func GetStudentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": student})
}

// GetStudentFeesAPI returns the student's full fee history, newest first.
func GetStudentFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	if _, err := database.GetStudentByID(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return err
	}

	fees, err := database.GetFees(db, c.Params("id"), "")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fees})
}

func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	student, err := req.toModel()
	if err != nil {
		return err
	}
	if student.AdmissionNo == "" {
		return fiber.NewError(fiber.StatusBadRequest, "admission_no is required")
	}

	if err := database.CreateStudent(db, student); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": student})
}

func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	student, err := req.toModel()
	if err != nil {
		return err
	}
	student.ID = c.Params("id")

	if err := database.UpdateStudent(db, student); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": student})
}

func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.SoftDeleteStudent(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
