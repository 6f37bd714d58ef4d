// Package jobs holds the scheduled background work: scanning the filing
// calendar and reminding every account about approaching deadlines.
package jobs

import (
	"smarttax-backend/internal/config"
	"smarttax-backend/internal/logger"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/service"
	"smarttax-backend/internal/session"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store     *repository.Store
	directory session.Directory
	email     service.EmailService
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies. email may be
// nil when delivery is not configured; reminders then stay in-app only.
func NewJobRunner(store *repository.Store, directory session.Directory, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:     store,
		directory: directory,
		email:     email,
		config:    cfg,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
