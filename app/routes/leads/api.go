package leads

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/models"
)

type leadRequest struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email"`
	Source       *string `json:"source"`
	CourseID     *string `json:"course_id"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes"`
	FollowUpDate *string `json:"follow_up_date"` // YYYY-MM-DD
}

func (r *leadRequest) toModel() (*models.Lead, error) {
	if r.Name == "" || r.Phone == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "name and phone are required")
	}

	status := models.LeadStatus(r.Status)
	if r.Status != "" && !status.IsValid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown lead status")
	}

	lead := &models.Lead{
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		Source:   r.Source,
		CourseID: r.CourseID,
		Status:   status,
		Notes:    r.Notes,
	}

	if r.FollowUpDate != nil && *r.FollowUpDate != "" {
		d, err := time.Parse("2006-01-02", *r.FollowUpDate)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "follow_up_date must be YYYY-MM-DD")
		}
		lead.FollowUpDate = &d
	}
	return lead, nil
}

func GetLeadsAPI(c *fiber.Ctx, db *sql.DB) error {
	status := models.LeadStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		return fiber.NewError(fiber.StatusBadRequest, "unknown lead status")
	}

	leads, err := database.GetLeads(db, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": leads})
}

// GetFollowUpsAPI lists open leads whose follow-up date has arrived.
func GetFollowUpsAPI(c *fiber.Ctx, db *sql.DB) error {
	leads, err := database.GetLeadsDueForFollowUp(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": leads})
}

func GetLeadByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	lead, err := database.GetLeadByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "lead not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": lead})
}

func CreateLeadAPI(c *fiber.Ctx, db *sql.DB) error {
	var req leadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	lead, err := req.toModel()
	if err != nil {
		return err
	}

	if err := database.CreateLead(db, lead); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": lead})
}

func UpdateLeadAPI(c *fiber.Ctx, db *sql.DB) error {
	var req leadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	lead, err := req.toModel()
	if err != nil {
		return err
	}
	lead.ID = c.Params("id")

	if err := database.UpdateLead(db, lead); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "lead not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": lead})
}

func DeleteLeadAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.SoftDeleteLead(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "lead not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ConvertLeadAPI enrolls a lead as a student. The enrollment details come from
// the request body; name defaults are derived from the lead itself.
func ConvertLeadAPI(c *fiber.Ctx, db *sql.DB) error {
	type ConvertRequest struct {
		AdmissionNo   string  `json:"admission_no"`
		FirstName     string  `json:"first_name"`
		LastName      string  `json:"last_name"`
		Gender        string  `json:"gender"`
		GuardianName  *string `json:"guardian_name"`
		GuardianPhone *string `json:"guardian_phone"`
		Address       *string `json:"address"`
		CourseID      *string `json:"course_id"`
	}

	var req ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.AdmissionNo == "" {
		return fiber.NewError(fiber.StatusBadRequest, "admission_no is required")
	}

	lead, err := database.GetLeadByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "lead not found")
		}
		return err
	}

	first, last := req.FirstName, req.LastName
	if first == "" {
		first, last = splitName(lead.Name)
	}

	courseID := req.CourseID
	if courseID == nil {
		courseID = lead.CourseID
	}

	student := &models.Student{
		AdmissionNo:   req.AdmissionNo,
		FirstName:     first,
		LastName:      last,
		Gender:        models.Gender(req.Gender),
		Phone:         &lead.Phone,
		Email:         lead.Email,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		Address:       req.Address,
		CourseID:      courseID,
	}

	if err := database.ConvertLead(db, lead.ID, student); err != nil {
		if strings.Contains(err.Error(), "already converted") {
			return fiber.NewError(fiber.StatusConflict, "lead already converted")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": student})
}

func splitName(full string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
