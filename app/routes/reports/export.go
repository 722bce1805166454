package reports

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/vinzencor/student-management/app/database"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportOutstandingFeesAPI downloads the outstanding-fees report as a
// spreadsheet for the accounts office.
func ExportOutstandingFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	rows, err := database.GetOutstandingFees(db)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Outstanding Fees"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student", "Fee", "Total", "Paid", "Outstanding", "Due Date", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		values := []interface{}{
			row.StudentName,
			row.FeeTitle,
			row.TotalAmount.InexactFloat64(),
			row.PaidAmount.InexactFloat64(),
			row.Outstanding.InexactFloat64(),
			row.DueDate.Format("2006-01-02"),
			string(row.Status),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return sendWorkbook(c, f, fmt.Sprintf("outstanding-fees-%s.xlsx", time.Now().Format("20060102")))
}

// ExportCollectionsAPI downloads receipts over a date range as a spreadsheet.
func ExportCollectionsAPI(c *fiber.Ctx, db *sql.DB) error {
	receipts, err := database.GetReceipts(db, c.Query("student_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Collections"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Receipt No", "Student", "Fee", "Amount", "Method", "Payment Date", "Issued At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range receipts {
		values := []interface{}{
			r.ReceiptNumber,
			r.StudentName,
			r.FeeTitle,
			r.AmountPaid.InexactFloat64(),
			r.PaymentMethod,
			r.PaymentDate.Format("2006-01-02"),
			r.IssuedAt.Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return sendWorkbook(c, f, fmt.Sprintf("collections-%s.xlsx", time.Now().Format("20060102")))
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
