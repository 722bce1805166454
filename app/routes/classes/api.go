package classes

import (
	"database/sql"
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
)

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var validDays = map[models.DayOfWeek]bool{
	models.Monday: true, models.Tuesday: true, models.Wednesday: true,
	models.Thursday: true, models.Friday: true, models.Saturday: true,
	models.Sunday: true,
}

type classRequest struct {
	CourseID  string  `json:"course_id"`
	TutorID   string  `json:"tutor_id"`
	DayOfWeek string  `json:"day_of_week"`
	StartTime string  `json:"start_time"` // HH:MM
	EndTime   string  `json:"end_time"`   // HH:MM
	Room      *string `json:"room"`
	IsActive  *bool   `json:"is_active"`
}

func (r *classRequest) toModel() (*models.ClassSession, error) {
	if r.CourseID == "" || r.TutorID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "course_id and tutor_id are required")
	}
	day := models.DayOfWeek(r.DayOfWeek)
	if !validDays[day] {
		return nil, fiber.NewError(fiber.StatusBadRequest, "day_of_week must be monday..sunday")
	}
	if !timeOfDay.MatchString(r.StartTime) || !timeOfDay.MatchString(r.EndTime) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "start_time and end_time must be HH:MM")
	}
	if r.EndTime <= r.StartTime {
		return nil, fiber.NewError(fiber.StatusBadRequest, "end_time must be after start_time")
	}

	cs := &models.ClassSession{
		CourseID:  r.CourseID,
		TutorID:   r.TutorID,
		DayOfWeek: day,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Room:      r.Room,
		IsActive:  true,
	}
	if r.IsActive != nil {
		cs.IsActive = *r.IsActive
	}
	return cs, nil
}

// GetClassesAPI lists scheduled sessions in timetable order. Filters: day,
// tutor_id.
func GetClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	day := models.DayOfWeek(c.Query("day"))
	if day != "" && !validDays[day] {
		return fiber.NewError(fiber.StatusBadRequest, "day must be monday..sunday")
	}

	sessions, err := database.GetClassSessions(db, day, c.Query("tutor_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": sessions})
}

func GetClassByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	cs, err := database.GetClassSessionByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "class not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": cs})
}

func CreateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	cs, err := req.toModel()
	if err != nil {
		return err
	}

	if err := database.CreateClassSession(db, cs); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cs})
}

func UpdateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	cs, err := req.toModel()
	if err != nil {
		return err
	}
	cs.ID = c.Params("id")

	if err := database.UpdateClassSession(db, cs); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "class not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": cs})
}

func DeleteClassAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.SoftDeleteClassSession(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "class not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
