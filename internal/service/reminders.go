package service

import (
	"fmt"
	"time"

	"github.com/credit-coach/backend/internal/models"
)

// SendPaymentReminders emails every borrower with an unpaid installment due
// within the configured reminder window. Called by the scheduler.
func (s *Service) SendPaymentReminders() error {
	if s.mailer == nil {
		return fmt.Errorf("reminder mailer is not configured")
	}

	payments, err := s.repo.ListUpcomingPayments(s.config.ReminderDays)
	if err != nil {
		return err
	}

	var failed int
	for _, payment := range payments {
		name := payment.Name
		if name == "" {
			name = payment.Email
		}
		if err := s.mailer.SendPaymentReminder(payment.Email, name, payment.DueDate, payment.Amount, payment.Overdue); err != nil {
			failed++
		}
	}

	s.log.Infof("Payment reminder run: %d due, %d failed", len(payments), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d reminders failed to send", failed, len(payments))
	}
	return nil
}

// RecordMonthlySnapshots stores one credit score snapshot per user so the
// score trend has history. Users without a snapshot get the default score.
func (s *Service) RecordMonthlySnapshots() error {
	users, err := s.repo.ListUsers()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, user := range users {
		snapshot := &models.CreditScore{
			UserID:     user.ID,
			Score:      s.latestScoreOrDefault(user.ID),
			RecordedAt: now,
		}
		if err := s.repo.CreateCreditScore(snapshot); err != nil {
			s.log.Errorf("Failed to snapshot score for user %d: %v", user.ID, err)
		}
	}

	s.log.Infof("Monthly score snapshots recorded for %d users", len(users))
	return nil
}
