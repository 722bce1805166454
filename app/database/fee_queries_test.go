package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinzencor/student-management/app/ledger"
	"github.com/vinzencor/student-management/app/models"
)

var feeColumnNames = []string{
	"id", "student_id", "fee_type_id", "title", "total_amount", "paid_amount",
	"status", "due_date", "paid_date", "payment_method", "created_at", "updated_at",
}

func TestFeeRepoListByStudentNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(feeColumnNames).
		AddRow("fee-2", "stu-1", nil, "April Tuition", "1000", "0",
			"pending", now, nil, nil, now, now).
		AddRow("fee-1", "stu-1", nil, "March Tuition", "1000", "1000",
			"paid", now.AddDate(0, -1, 0), now, "cash", now.AddDate(0, -1, 0), now)

	mock.ExpectQuery("SELECT (.+) FROM fees").
		WithArgs("stu-1").
		WillReturnRows(rows)

	repo := NewFeeRepo(db)
	fees, err := repo.ListByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, fees, 2)
	assert.Equal(t, "fee-2", fees[0].ID)
	assert.Equal(t, models.FeePending, fees[0].Status)
	assert.Equal(t, "fee-1", fees[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepoUpdateGuardHit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	paidDate := now
	method := "cash"
	rows := sqlmock.NewRows(feeColumnNames).
		AddRow("fee-1", "stu-1", nil, "April Tuition", "1000", "1000",
			"paid", now, paidDate, method, now, now)

	mock.ExpectQuery("UPDATE fees").
		WithArgs(decimal.NewFromInt(1000), models.FeePaid, &paidDate, "cash",
			"fee-1", decimal.NewFromInt(400)).
		WillReturnRows(rows)

	repo := NewFeeRepo(db)
	fee, err := repo.Update(context.Background(), "fee-1", ledger.FeeUpdate{
		ExpectedPaid:  decimal.NewFromInt(400),
		PaidAmount:    decimal.NewFromInt(1000),
		Status:        models.FeePaid,
		PaidDate:      &paidDate,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeePaid, fee.Status)
	assert.True(t, fee.PaidAmount.Equal(decimal.NewFromInt(1000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepoUpdateGuardMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Another terminal already moved paid_amount past ExpectedPaid, so the
	// conditional update matches no row.
	mock.ExpectQuery("UPDATE fees").
		WillReturnRows(sqlmock.NewRows(feeColumnNames))

	repo := NewFeeRepo(db)
	_, err = repo.Update(context.Background(), "fee-1", ledger.FeeUpdate{
		ExpectedPaid: decimal.NewFromInt(400),
		PaidAmount:   decimal.NewFromInt(900),
		Status:       models.FeePartial,
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepoCreateReturnsStoredRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO fees").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("fee-9", now, now))

	repo := NewFeeRepo(db)
	paidDate := now
	method := "card"
	created, err := repo.Create(context.Background(), &models.Fee{
		StudentID:     "stu-1",
		Title:         "Walk-in payment",
		TotalAmount:   decimal.NewFromInt(500),
		PaidAmount:    decimal.NewFromInt(500),
		Status:        models.FeePaid,
		DueDate:       now,
		PaidDate:      &paidDate,
		PaymentMethod: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, "fee-9", created.ID)
	assert.Equal(t, models.FeePaid, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
