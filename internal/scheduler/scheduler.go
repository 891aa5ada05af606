package scheduler

import (
	"github.com/credit-coach/backend/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the recurring background jobs: EMI payment reminders and
// monthly credit score snapshots.
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *logrus.Logger
}

// New initializes a scheduler
func New(svc *service.Service, log *logrus.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), svc: svc, log: log}
}

// Start registers the jobs and launches the cron loop
func (s *Scheduler) Start() error {
	// Reminder sweep every morning
	if _, err := s.cron.AddFunc("0 9 * * *", s.paymentReminders); err != nil {
		return err
	}
	// Score snapshot on the first of each month
	if _, err := s.cron.AddFunc("0 0 1 * *", s.scoreSnapshots); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Scheduler started")
	return nil
}

// Stop halts the cron loop; running jobs finish
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) paymentReminders() {
	if err := s.svc.SendPaymentReminders(); err != nil {
		s.log.Errorf("Payment reminder run failed: %v", err)
	}
}

func (s *Scheduler) scoreSnapshots() {
	if err := s.svc.RecordMonthlySnapshots(); err != nil {
		s.log.Errorf("Score snapshot run failed: %v", err)
	}
}
