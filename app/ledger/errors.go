package ledger

import (
	"errors"
	"fmt"

	"github.com/vinzencor/student-management/app/models"
)

var (
	// ErrInvalidAmount is returned when a payment amount is zero or negative.
	// The event is rejected before any repository call is made.
	ErrInvalidAmount = errors.New("ledger: payment amount must be positive")

	// ErrInvalidStudent is returned when a payment event carries no student.
	ErrInvalidStudent = errors.New("ledger: student id is required")

	// ErrNotFound is returned by FeeRepository.Update when the target fee no
	// longer matches — either it was deleted, or a concurrent payment changed
	// its paid amount between our read and our write. The caller decides
	// whether to retry by re-applying the payment.
	ErrNotFound = errors.New("ledger: fee not found or concurrently modified")
)

// ReceiptIssuanceError reports that the fee obligation was updated but the
// receipt could not be recorded. It carries the already-applied fee so the
// caller can compensate (retry issuance, alert the operator) instead of
// treating the payment as either a clean success or a clean failure.
type ReceiptIssuanceError struct {
	Fee *models.Fee
	Err error
}

func (e *ReceiptIssuanceError) Error() string {
	return fmt.Sprintf("ledger: payment applied to fee %s but receipt issuance failed: %v", e.Fee.ID, e.Err)
}

func (e *ReceiptIssuanceError) Unwrap() error {
	return e.Err
}
