package accounting

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

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

func GetCategoriesAPI(c *fiber.Ctx, db *sql.DB) error {
	txType := models.TransactionType(c.Query("type"))
	if txType != "" && !txType.IsValid() {
		return fiber.NewError(fiber.StatusBadRequest, "type must be income or expense")
	}

	categories, err := database.GetCategories(db, txType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

func CreateCategoryAPI(c *fiber.Ctx, db *sql.DB) error {
	type CategoryRequest struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	txType := models.TransactionType(req.Type)
	if req.Name == "" || !txType.IsValid() {
		return fiber.NewError(fiber.StatusBadRequest, "name and a valid type are required")
	}

	cat := &models.Category{Name: req.Name, Type: txType, IsActive: true}
	if err := database.CreateCategory(db, cat); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cat})
}

// GetTransactionsAPI lists book entries. Filters: type, category_id, from, to.
func GetTransactionsAPI(c *fiber.Ctx, db *sql.DB) error {
	txType := models.TransactionType(c.Query("type"))
	if txType != "" && !txType.IsValid() {
		return fiber.NewError(fiber.StatusBadRequest, "type must be income or expense")
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}

	transactions, err := database.GetTransactions(db, txType, c.Query("category_id"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": transactions})
}

// CreateTransactionAPI books a manual entry, e.g. rent or a cash purchase.
// Fee income normally arrives through payments, not through this endpoint.
func CreateTransactionAPI(c *fiber.Ctx, db *sql.DB) error {
	type TransactionRequest struct {
		Type       string          `json:"type"`
		CategoryID string          `json:"category_id"`
		Title      string          `json:"title"`
		Amount     decimal.Decimal `json:"amount"`
		Date       string          `json:"date"`
		Notes      *string         `json:"notes"`
	}

	var req TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	txType := models.TransactionType(req.Type)
	if !txType.IsValid() {
		return fiber.NewError(fiber.StatusBadRequest, "type must be income or expense")
	}
	if req.CategoryID == "" || req.Title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "category_id and title are required")
	}
	if !req.Amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	t := &models.Transaction{
		Type:       txType,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Amount:     req.Amount,
		Date:       date,
		Notes:      req.Notes,
	}
	if err := database.CreateTransaction(db, t); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": t})
}

func DeleteTransactionAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.SoftDeleteTransaction(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "transaction not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetPeriodSummariesAPI returns month-by-month income/expense totals. Defaults
// to the trailing twelve months.
func GetPeriodSummariesAPI(c *fiber.Ctx, db *sql.DB) error {
	to := time.Now()
	from := to.AddDate(-1, 0, 0)

	if p, err := parseDateQuery(c, "from"); err != nil {
		return err
	} else if p != nil {
		from = *p
	}
	if p, err := parseDateQuery(c, "to"); err != nil {
		return err
	} else if p != nil {
		to = *p
	}

	summaries, err := database.GetPeriodSummaries(db, from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": summaries})
}
