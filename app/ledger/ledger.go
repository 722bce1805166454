package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vinzencor/student-management/app/models"
)

// PaymentEvent describes money received from a student. It is consumed to
// produce exactly one fee mutation and one receipt; it is not persisted.
type PaymentEvent struct {
	StudentID   string
	Amount      decimal.Decimal
	Date        time.Time
	Method      string
	Description string
}

// FeeUpdate is the patch applied to the target fee. ExpectedPaid is the paid
// amount read in this call; the store must apply the patch only if the row
// still carries that value, so two concurrent payments cannot both write over
// the same baseline.
type FeeUpdate struct {
	ExpectedPaid  decimal.Decimal
	PaidAmount    decimal.Decimal
	Status        models.FeeStatus
	PaidDate      *time.Time
	PaymentMethod string
}

// FeeRepository is the persistence boundary for fee obligations.
type FeeRepository interface {
	// ListByStudent returns all fees for the student, any status,
	// newest-first. Empty slice if none.
	ListByStudent(ctx context.Context, studentID string) ([]*models.Fee, error)
	// Create persists a new fee and returns the full record with its id.
	Create(ctx context.Context, fee *models.Fee) (*models.Fee, error)
	// Update applies a guarded patch; it returns ErrNotFound when the row is
	// gone or its paid amount no longer equals upd.ExpectedPaid.
	Update(ctx context.Context, id string, upd FeeUpdate) (*models.Fee, error)
}

// ReceiptIssuer is the persistence boundary for receipts. Create only —
// receipts are immutable.
type ReceiptIssuer interface {
	Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error)
}

// Ledger translates payment events into consistent fee updates and receipt
// issuance. It holds no state between calls; all state lives behind the two
// repository interfaces.
type Ledger struct {
	fees     FeeRepository
	receipts ReceiptIssuer
	log      *zap.Logger

	now       func() time.Time
	numberGen func(time.Time) string
}

// New creates a Ledger over the given repositories.
func New(fees FeeRepository, receipts ReceiptIssuer, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		fees:      fees,
		receipts:  receipts,
		log:       log,
		now:       time.Now,
		numberGen: ReceiptNumber,
	}
}

// ApplyPayment locates or creates the fee obligation the payment applies to,
// updates its paid amount and status, and issues an immutable receipt.
//
// Selection rule: the first pending or partial fee, newest-first. If every
// fee is already settled (or the student has none), the payment is recorded
// as a new fully-paid obligation equal to the amount received — the walk-in
// case with no prior invoice.
//
// Overpayment is capped at the obligation's total; the receipt still records
// the full cash amount received, so the two may legitimately diverge.
func (l *Ledger) ApplyPayment(ctx context.Context, event PaymentEvent) (*models.Fee, *models.Receipt, error) {
	if event.StudentID == "" {
		return nil, nil, ErrInvalidStudent
	}
	if !event.Amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	fees, err := l.fees.ListByStudent(ctx, event.StudentID)
	if err != nil {
		return nil, nil, fmt.Errorf("list fees for student %s: %w", event.StudentID, err)
	}

	var target *models.Fee
	for _, f := range fees {
		if f.Status.CanReceivePayment() {
			target = f
			break
		}
	}

	if target == nil {
		target, err = l.createSettledFee(ctx, event)
	} else {
		target, err = l.applyToFee(ctx, target, event)
	}
	if err != nil {
		return nil, nil, err
	}

	receipt, err := l.issueReceipt(ctx, target, event)
	if err != nil {
		// The obligation mutation already happened; never report this as a
		// plain failure or the caller will re-apply the payment.
		l.log.Error("receipt issuance failed after fee update",
			zap.String("fee_id", target.ID),
			zap.String("student_id", event.StudentID),
			zap.Error(err))
		return target, nil, &ReceiptIssuanceError{Fee: target, Err: err}
	}

	l.log.Info("payment applied",
		zap.String("student_id", event.StudentID),
		zap.String("fee_id", target.ID),
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("amount", event.Amount.String()),
		zap.String("status", string(target.Status)))

	return target, receipt, nil
}

// createSettledFee records an ad hoc payment with no open obligation as a new
// fee that is born fully paid.
func (l *Ledger) createSettledFee(ctx context.Context, event PaymentEvent) (*models.Fee, error) {
	method := event.Method
	date := event.Date
	fee := &models.Fee{
		StudentID:     event.StudentID,
		Title:         adHocTitle(event),
		TotalAmount:   event.Amount,
		PaidAmount:    event.Amount,
		Status:        models.FeePaid,
		DueDate:       event.Date,
		PaidDate:      &date,
		PaymentMethod: &method,
	}
	created, err := l.fees.Create(ctx, fee)
	if err != nil {
		return nil, fmt.Errorf("create fee for student %s: %w", event.StudentID, err)
	}
	return created, nil
}

// applyToFee accumulates the payment on an open obligation, capping at its
// total and recomputing the derived status.
func (l *Ledger) applyToFee(ctx context.Context, target *models.Fee, event PaymentEvent) (*models.Fee, error) {
	newPaid := target.PaidAmount.Add(event.Amount)
	if newPaid.GreaterThan(target.TotalAmount) {
		newPaid = target.TotalAmount
	}
	status := models.DeriveFeeStatus(newPaid, target.TotalAmount)

	upd := FeeUpdate{
		ExpectedPaid:  target.PaidAmount,
		PaidAmount:    newPaid,
		Status:        status,
		PaymentMethod: event.Method,
	}
	if status == models.FeePaid {
		date := event.Date
		upd.PaidDate = &date
	}

	updated, err := l.fees.Update(ctx, target.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("update fee %s: %w", target.ID, err)
	}
	return updated, nil
}

// issueReceipt records the payment itself. AmountPaid is the cash received in
// this event, not the obligation's cumulative paid amount.
func (l *Ledger) issueReceipt(ctx context.Context, fee *models.Fee, event PaymentEvent) (*models.Receipt, error) {
	receipt := &models.Receipt{
		ReceiptNumber: l.numberGen(l.now()),
		StudentID:     event.StudentID,
		FeeID:         fee.ID,
		AmountPaid:    event.Amount,
		PaymentDate:   event.Date,
		PaymentMethod: event.Method,
		Description:   event.Description,
		IssuedAt:      l.now(),
	}
	return l.receipts.Create(ctx, receipt)
}

func adHocTitle(event PaymentEvent) string {
	if event.Description != "" {
		return event.Description
	}
	return "Payment " + event.Date.Format("2006-01-02")
}
