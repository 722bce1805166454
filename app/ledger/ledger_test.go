package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinzencor/student-management/app/models"
)

type feeRepoFake struct {
	fees        []*models.Fee
	nextID      int
	listCalls   int
	createCalls int
	updateCalls int
	updateErr   error
}

func (r *feeRepoFake) ListByStudent(_ context.Context, studentID string) ([]*models.Fee, error) {
	r.listCalls++
	var out []*models.Fee
	for _, f := range r.fees {
		if f.StudentID == studentID {
			out = append(out, cloneFee(f))
		}
	}
	return out, nil
}

func (r *feeRepoFake) Create(_ context.Context, fee *models.Fee) (*models.Fee, error) {
	r.createCalls++
	r.nextID++
	created := cloneFee(fee)
	created.ID = fmt.Sprintf("fee-%d", r.nextID)
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	// newest first, matching the SQL repository's ordering
	r.fees = append([]*models.Fee{created}, r.fees...)
	return cloneFee(created), nil
}

func (r *feeRepoFake) Update(_ context.Context, id string, upd FeeUpdate) (*models.Fee, error) {
	r.updateCalls++
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for _, f := range r.fees {
		if f.ID != id {
			continue
		}
		if !f.PaidAmount.Equal(upd.ExpectedPaid) {
			return nil, ErrNotFound
		}
		f.PaidAmount = upd.PaidAmount
		f.Status = upd.Status
		if upd.PaidDate != nil {
			f.PaidDate = upd.PaidDate
		}
		method := upd.PaymentMethod
		f.PaymentMethod = &method
		f.UpdatedAt = time.Now()
		return cloneFee(f), nil
	}
	return nil, ErrNotFound
}

func cloneFee(f *models.Fee) *models.Fee {
	c := *f
	return &c
}

type receiptIssuerFake struct {
	receipts    []*models.Receipt
	createCalls int
	failWith    error
}

func (r *receiptIssuerFake) Create(_ context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	r.createCalls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	created := *receipt
	created.ID = fmt.Sprintf("rcpt-%d", r.createCalls)
	r.receipts = append(r.receipts, &created)
	return &created, nil
}

func newTestLedger(fees *feeRepoFake, receipts *receiptIssuerFake) *Ledger {
	l := New(fees, receipts, nil)
	l.now = func() time.Time { return time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC) }
	return l
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func openFee(id, studentID string, total, paid int64) *models.Fee {
	return &models.Fee{
		ID:          id,
		StudentID:   studentID,
		Title:       "Monthly Tuition",
		TotalAmount: dec(total),
		PaidAmount:  dec(paid),
		Status:      models.DeriveFeeStatus(dec(paid), dec(total)),
		DueDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func event(studentID string, amount int64) PaymentEvent {
	return PaymentEvent{
		StudentID: studentID,
		Amount:    dec(amount),
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Method:    "cash",
	}
}

func TestApplyPaymentRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		event   PaymentEvent
		wantErr error
	}{
		{"zero amount", event("stu-1", 0), ErrInvalidAmount},
		{"negative amount", PaymentEvent{StudentID: "stu-1", Amount: dec(-50)}, ErrInvalidAmount},
		{"empty student", event("", 100), ErrInvalidStudent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees := &feeRepoFake{}
			receipts := &receiptIssuerFake{}
			l := newTestLedger(fees, receipts)

			_, _, err := l.ApplyPayment(context.Background(), tt.event)
			require.ErrorIs(t, err, tt.wantErr)

			// rejected before any repository call
			assert.Zero(t, fees.listCalls)
			assert.Zero(t, fees.createCalls)
			assert.Zero(t, fees.updateCalls)
			assert.Zero(t, receipts.createCalls)
		})
	}
}

func TestApplyPaymentNoPriorObligation(t *testing.T) {
	fees := &feeRepoFake{}
	receipts := &receiptIssuerFake{}
	l := newTestLedger(fees, receipts)

	fee, receipt, err := l.ApplyPayment(context.Background(), event("stu-1", 500))
	require.NoError(t, err)

	assert.True(t, fee.TotalAmount.Equal(dec(500)))
	assert.True(t, fee.PaidAmount.Equal(dec(500)))
	assert.Equal(t, models.FeePaid, fee.Status)
	require.NotNil(t, fee.PaidDate)
	assert.Equal(t, fee.DueDate, *fee.PaidDate)

	require.NotNil(t, receipt)
	assert.True(t, receipt.AmountPaid.Equal(dec(500)))
	assert.Equal(t, fee.ID, receipt.FeeID)

	assert.Equal(t, 1, fees.createCalls)
	assert.Zero(t, fees.updateCalls)
	assert.Equal(t, 1, receipts.createCalls)
}

func TestApplyPaymentPartialThenComplete(t *testing.T) {
	fees := &feeRepoFake{fees: []*models.Fee{openFee("fee-a", "stu-1", 1000, 0)}}
	receipts := &receiptIssuerFake{}
	l := newTestLedger(fees, receipts)

	fee, r1, err := l.ApplyPayment(context.Background(), event("stu-1", 400))
	require.NoError(t, err)
	assert.True(t, fee.PaidAmount.Equal(dec(400)))
	assert.Equal(t, models.FeePartial, fee.Status)
	assert.Nil(t, fee.PaidDate)
	assert.True(t, r1.AmountPaid.Equal(dec(400)))

	fee, r2, err := l.ApplyPayment(context.Background(), event("stu-1", 600))
	require.NoError(t, err)
	assert.Equal(t, "fee-a", fee.ID)
	assert.True(t, fee.PaidAmount.Equal(dec(1000)))
	assert.Equal(t, models.FeePaid, fee.Status)
	require.NotNil(t, fee.PaidDate)
	assert.True(t, r2.AmountPaid.Equal(dec(600)))

	require.Len(t, receipts.receipts, 2)
	sum := receipts.receipts[0].AmountPaid.Add(receipts.receipts[1].AmountPaid)
	assert.True(t, sum.Equal(dec(1000)))
	assert.Zero(t, fees.createCalls)
	assert.Equal(t, 2, fees.updateCalls)
}

func TestApplyPaymentOverpaymentCapped(t *testing.T) {
	fees := &feeRepoFake{fees: []*models.Fee{openFee("fee-a", "stu-1", 500, 0)}}
	receipts := &receiptIssuerFake{}
	l := newTestLedger(fees, receipts)

	fee, receipt, err := l.ApplyPayment(context.Background(), event("stu-1", 700))
	require.NoError(t, err)

	// obligation capped at total, receipt records the actual cash received
	assert.True(t, fee.PaidAmount.Equal(dec(500)))
	assert.Equal(t, models.FeePaid, fee.Status)
	assert.True(t, receipt.AmountPaid.Equal(dec(700)))
}

func TestApplyPaymentAllPaidCreatesNewObligation(t *testing.T) {
	settled := openFee("fee-a", "stu-1", 300, 300)
	fees := &feeRepoFake{fees: []*models.Fee{settled}}
	receipts := &receiptIssuerFake{}
	l := newTestLedger(fees, receipts)

	fee, receipt, err := l.ApplyPayment(context.Background(), event("stu-1", 200))
	require.NoError(t, err)

	assert.NotEqual(t, "fee-a", fee.ID)
	assert.True(t, fee.TotalAmount.Equal(dec(200)))
	assert.Equal(t, models.FeePaid, fee.Status)
	assert.True(t, receipt.AmountPaid.Equal(dec(200)))

	// the settled obligation was not reopened
	assert.True(t, settled.PaidAmount.Equal(dec(300)))
	assert.Equal(t, models.FeePaid, settled.Status)
	assert.Zero(t, fees.updateCalls)
}

func TestApplyPaymentTargetsNewestOpenFee(t *testing.T) {
	newest := openFee("fee-new", "stu-1", 800, 0)
	oldest := openFee("fee-old", "stu-1", 400, 100)
	fees := &feeRepoFake{fees: []*models.Fee{newest, oldest}}
	receipts := &receiptIssuerFake{}
	l := newTestLedger(fees, receipts)

	fee, _, err := l.ApplyPayment(context.Background(), event("stu-1", 100))
	require.NoError(t, err)
	assert.Equal(t, "fee-new", fee.ID)
	assert.True(t, oldest.PaidAmount.Equal(dec(100)))
}

func TestApplyPaymentSkipsSettledToFirstOpen(t *testing.T) {
	fees := &feeRepoFake{fees: []*models.Fee{
		openFee("fee-settled", "stu-1", 100, 100),
		openFee("fee-open", "stu-1", 600, 0),
	}}
	receipts := &receiptIssuerFake{}
	l := newTestLedger(fees, receipts)

	fee, _, err := l.ApplyPayment(context.Background(), event("stu-1", 250))
	require.NoError(t, err)
	assert.Equal(t, "fee-open", fee.ID)
	assert.Equal(t, models.FeePartial, fee.Status)
}

func TestApplyPaymentReceiptFailureSurfaced(t *testing.T) {
	fees := &feeRepoFake{fees: []*models.Fee{openFee("fee-a", "stu-1", 1000, 0)}}
	receipts := &receiptIssuerFake{failWith: errors.New("receipts table unavailable")}
	l := newTestLedger(fees, receipts)

	fee, receipt, err := l.ApplyPayment(context.Background(), event("stu-1", 400))
	require.Error(t, err)
	assert.Nil(t, receipt)

	var issuanceErr *ReceiptIssuanceError
	require.ErrorAs(t, err, &issuanceErr)
	require.NotNil(t, issuanceErr.Fee)
	assert.Equal(t, "fee-a", issuanceErr.Fee.ID)
	assert.True(t, issuanceErr.Fee.PaidAmount.Equal(dec(400)))

	// the applied fee is also returned directly so callers can compensate
	require.NotNil(t, fee)
	assert.Equal(t, issuanceErr.Fee.ID, fee.ID)
}

func TestApplyPaymentConcurrentConflictSurfacesNotFound(t *testing.T) {
	fees := &feeRepoFake{
		fees:      []*models.Fee{openFee("fee-a", "stu-1", 1000, 0)},
		updateErr: ErrNotFound,
	}
	receipts := &receiptIssuerFake{}
	l := newTestLedger(fees, receipts)

	_, _, err := l.ApplyPayment(context.Background(), event("stu-1", 400))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, receipts.createCalls)
}

func TestApplyPaymentInvariantHoldsAcrossSequences(t *testing.T) {
	sequences := [][]int64{
		{100},
		{400, 600},
		{250, 250, 250, 250},
		{999, 1},
		{700, 700},
		{1500},
		{1, 1, 1, 5000},
	}
	for i, seq := range sequences {
		t.Run(fmt.Sprintf("sequence_%d", i), func(t *testing.T) {
			fees := &feeRepoFake{fees: []*models.Fee{openFee("fee-a", "stu-1", 1000, 0)}}
			receipts := &receiptIssuerFake{}
			l := newTestLedger(fees, receipts)

			for _, amt := range seq {
				_, _, err := l.ApplyPayment(context.Background(), event("stu-1", amt))
				require.NoError(t, err)
			}

			for _, f := range fees.fees {
				assert.False(t, f.PaidAmount.IsNegative())
				assert.True(t, f.PaidAmount.LessThanOrEqual(f.TotalAmount))
				assert.Equal(t, models.DeriveFeeStatus(f.PaidAmount, f.TotalAmount), f.Status)
			}
			// one receipt per applied payment
			assert.Len(t, receipts.receipts, len(seq))
		})
	}
}

func TestListByStudentReadPathIsIdempotent(t *testing.T) {
	fees := &feeRepoFake{fees: []*models.Fee{
		openFee("fee-a", "stu-1", 1000, 250),
		openFee("fee-b", "stu-1", 500, 500),
	}}

	first, err := fees.ListByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	second, err := fees.ListByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
