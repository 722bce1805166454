package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vinzencor/student-management/app/config"
	"github.com/vinzencor/student-management/app/database"
)

// Scheduler runs the nightly housekeeping jobs: the overdue-fee sweep and the
// lead follow-up digest. It fires once a day at the configured local time.
type Scheduler struct {
	db     *sql.DB
	mailer Mailer
	log    *zap.Logger
	runAt  string // HH:MM

	adminEmail string
}

func NewScheduler(db *sql.DB, mailer Mailer, log *zap.Logger, cfg *config.Config) *Scheduler {
	return &Scheduler{
		db:         db,
		mailer:     mailer,
		log:        log,
		runAt:      cfg.Scheduler.RunAt,
		adminEmail: cfg.Mail.AdminEmail,
	}
}

// Start launches the daily loop. It returns immediately; the loop stops when
// ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	for {
		wait := time.Until(s.nextRun(time.Now()))
		s.log.Info("scheduler sleeping until next run", zap.Duration("wait", wait))

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		s.RunOnce()
	}
}

// nextRun returns the next occurrence of the configured HH:MM after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	var hour, minute int
	if _, err := fmt.Sscanf(s.runAt, "%d:%d", &hour, &minute); err != nil {
		hour, minute = 20, 0
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunOnce executes all housekeeping jobs immediately. Each job failure is
// logged; one failing job does not stop the others.
func (s *Scheduler) RunOnce() {
	if err := s.overdueFeeSweep(); err != nil {
		s.log.Error("overdue fee sweep failed", zap.Error(err))
	}
	if err := s.followUpDigest(); err != nil {
		s.log.Error("lead follow-up digest failed", zap.Error(err))
	}
}

// overdueFeeSweep reports open fees past their due date to the admin inbox.
func (s *Scheduler) overdueFeeSweep() error {
	count, amount, err := database.CountOverdueFees(s.db)
	if err != nil {
		return fmt.Errorf("count overdue fees: %w", err)
	}

	s.log.Info("overdue fee sweep",
		zap.Int("overdue_count", count),
		zap.String("overdue_amount", amount.String()))

	if count == 0 || s.adminEmail == "" {
		return nil
	}

	rows, err := database.GetOutstandingFees(s.db)
	if err != nil {
		return fmt.Errorf("list outstanding fees: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d overdue fee(s) totalling %s.\n\n", count, amount.String())
	for _, r := range rows {
		if r.DueDate.After(time.Now()) {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s, %s outstanding, due %s\n",
			r.StudentName, r.FeeTitle, r.Outstanding.String(), r.DueDate.Format("2006-01-02"))
	}

	subject := fmt.Sprintf("Overdue fees: %d open (%s)", count, time.Now().Format("2006-01-02"))
	return s.mailer.Send(s.adminEmail, subject, b.String())
}

// followUpDigest reminds the front desk about leads whose follow-up date has
// arrived.
func (s *Scheduler) followUpDigest() error {
	leads, err := database.GetLeadsDueForFollowUp(s.db)
	if err != nil {
		return fmt.Errorf("list follow-ups: %w", err)
	}

	s.log.Info("lead follow-up digest", zap.Int("due_count", len(leads)))

	if len(leads) == 0 || s.adminEmail == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d lead(s) due for follow-up.\n\n", len(leads))
	for _, l := range leads {
		fmt.Fprintf(&b, "- %s (%s), status %s, due %s\n",
			l.Name, l.Phone, l.Status, l.FollowUpDate.Format("2006-01-02"))
	}

	subject := fmt.Sprintf("Lead follow-ups due: %d (%s)", len(leads), time.Now().Format("2006-01-02"))
	return s.mailer.Send(s.adminEmail, subject, b.String())
}
