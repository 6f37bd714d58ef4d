// Package scheduler drives the background jobs on a cron cadence.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"smarttax-backend/internal/jobs"
	"smarttax-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Reminders

	_, err := s.cron.AddFunc(cfg.Schedule, s.jobs.SendFilingReminders)
	if err != nil {
		logger.Error("Failed to register SendFilingReminders job", "error", err)
		return
	}

	logger.Info("All cron jobs registered successfully", "schedule", cfg.Schedule)
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started")
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}
