package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinzencor/student-management/app/ledger"
	"github.com/vinzencor/student-management/app/models"
)

type feeRepoFake struct {
	fees []*models.Fee
}

func (f *feeRepoFake) ListByStudent(_ context.Context, studentID string) ([]*models.Fee, error) {
	var out []*models.Fee
	for _, fee := range f.fees {
		if fee.StudentID == studentID {
			out = append(out, fee)
		}
	}
	return out, nil
}

func (f *feeRepoFake) Create(_ context.Context, fee *models.Fee) (*models.Fee, error) {
	created := *fee
	created.ID = "fee-new"
	f.fees = append([]*models.Fee{&created}, f.fees...)
	return &created, nil
}

func (f *feeRepoFake) Update(_ context.Context, id string, upd ledger.FeeUpdate) (*models.Fee, error) {
	for _, fee := range f.fees {
		if fee.ID != id {
			continue
		}
		if !fee.PaidAmount.Equal(upd.ExpectedPaid) {
			return nil, ledger.ErrNotFound
		}
		fee.PaidAmount = upd.PaidAmount
		fee.Status = upd.Status
		if upd.PaidDate != nil {
			fee.PaidDate = upd.PaidDate
		}
		return fee, nil
	}
	return nil, ledger.ErrNotFound
}

type receiptIssuerFake struct {
	failWith error
}

func (r *receiptIssuerFake) Create(_ context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	created := *receipt
	created.ID = "rcpt-1"
	return &created, nil
}

func newTestApp(fees *feeRepoFake, receipts *receiptIssuerFake) *fiber.App {
	app := fiber.New()
	h := &Handler{Ledger: ledger.New(fees, receipts, nil)}
	app.Post("/api/payments", h.RecordPaymentAPI)
	return app
}

func openFee(id, studentID string, total, paid int64) *models.Fee {
	return &models.Fee{
		ID:          id,
		StudentID:   studentID,
		Title:       "April Tuition",
		TotalAmount: decimal.NewFromInt(total),
		PaidAmount:  decimal.NewFromInt(paid),
		Status:      models.DeriveFeeStatus(decimal.NewFromInt(paid), decimal.NewFromInt(total)),
		DueDate:     time.Now(),
	}
}

func postPayment(t *testing.T, app *fiber.App, body map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/payments", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if json.Unmarshal(payload, &decoded) != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

func TestRecordPaymentAppliesToOpenFee(t *testing.T) {
	fees := &feeRepoFake{fees: []*models.Fee{openFee("fee-1", "stu-1", 1000, 0)}}
	app := newTestApp(fees, &receiptIssuerFake{})

	status, body := postPayment(t, app, map[string]interface{}{
		"student_id": "stu-1",
		"amount":     "400",
		"method":     "cash",
	})

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["receipt_issued"])

	data := body["data"].(map[string]interface{})
	fee := data["fee"].(map[string]interface{})
	assert.Equal(t, "partial", fee["status"])
	assert.Equal(t, "400", fee["paid_amount"])
	receipt := data["receipt"].(map[string]interface{})
	assert.Equal(t, "400", receipt["amount_paid"])
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	app := newTestApp(&feeRepoFake{}, &receiptIssuerFake{})

	status, _ := postPayment(t, app, map[string]interface{}{
		"student_id": "stu-1",
		"amount":     "0",
		"method":     "cash",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRecordPaymentRejectsUnknownMethod(t *testing.T) {
	app := newTestApp(&feeRepoFake{}, &receiptIssuerFake{})

	status, _ := postPayment(t, app, map[string]interface{}{
		"student_id": "stu-1",
		"amount":     "400",
		"method":     "barter",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRecordPaymentRejectsBadDate(t *testing.T) {
	app := newTestApp(&feeRepoFake{}, &receiptIssuerFake{})

	status, _ := postPayment(t, app, map[string]interface{}{
		"student_id": "stu-1",
		"amount":     "400",
		"method":     "cash",
		"date":       "31-03-2025",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRecordPaymentWithNoOpenFeeCreatesSettledFee(t *testing.T) {
	fees := &feeRepoFake{}
	app := newTestApp(fees, &receiptIssuerFake{})

	status, body := postPayment(t, app, map[string]interface{}{
		"student_id":  "stu-1",
		"amount":      "750",
		"method":      "upi",
		"description": "Exam fee",
	})

	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	fee := data["fee"].(map[string]interface{})
	assert.Equal(t, "paid", fee["status"])
	assert.Equal(t, "Exam fee", fee["title"])
}

func TestRecordPaymentReceiptFailureReportsPartialSuccess(t *testing.T) {
	fees := &feeRepoFake{fees: []*models.Fee{openFee("fee-1", "stu-1", 1000, 0)}}
	app := newTestApp(fees, &receiptIssuerFake{failWith: assert.AnError})

	status, body := postPayment(t, app, map[string]interface{}{
		"student_id": "stu-1",
		"amount":     "400",
		"method":     "cash",
	})

	require.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, false, body["receipt_issued"])
	// The fee mutation stands even though the receipt never materialised.
	assert.True(t, fees.fees[0].PaidAmount.Equal(decimal.NewFromInt(400)))
}
