package attendance

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
)

func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" must be YYYY-MM-DD")
	}
	return &d, nil
}

// GetAttendanceAPI lists marks filtered by class_id, student_id, from, to.
func GetAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}

	marks, err := database.GetAttendance(db, c.Query("class_id"), c.Query("student_id"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": marks})
}

func GetAttendanceStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}

	stats, err := database.GetAttendanceStats(db, c.Params("studentId"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

type markRequest struct {
	StudentID string  `json:"student_id"`
	ClassID   string  `json:"class_id"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Status    string  `json:"status"`
	Notes     *string `json:"notes"`
}

func (r *markRequest) toModel(markedBy string) (*models.Attendance, error) {
	if r.StudentID == "" || r.ClassID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "student_id and class_id are required")
	}
	status := models.AttendanceStatus(r.Status)
	if !status.IsValid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "status must be present, absent, late or excused")
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	a := &models.Attendance{
		StudentID: r.StudentID,
		ClassID:   r.ClassID,
		Date:      date,
		Status:    status,
		Notes:     r.Notes,
	}
	if markedBy != "" {
		a.MarkedBy = &markedBy
	}
	return a, nil
}

// MarkAttendanceAPI records a single mark; re-marking the same student/class/
// date corrects the earlier one.
func MarkAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	var req markRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	markedBy, _ := c.Locals("user_id").(string)
	a, err := req.toModel(markedBy)
	if err != nil {
		return err
	}

	if err := database.MarkAttendance(db, a); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": a})
}

// MarkAttendanceBulkAPI records marks for a whole roster at once.
func MarkAttendanceBulkAPI(c *fiber.Ctx, db *sql.DB) error {
	type BulkRequest struct {
		Marks []markRequest `json:"marks"`
	}

	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Marks) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "marks must not be empty")
	}

	markedBy, _ := c.Locals("user_id").(string)
	marks := make([]*models.Attendance, 0, len(req.Marks))
	for i := range req.Marks {
		a, err := req.Marks[i].toModel(markedBy)
		if err != nil {
			return err
		}
		marks = append(marks, a)
	}

	if err := database.MarkAttendanceBulk(db, marks); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"marked": len(marks)},
	})
}
