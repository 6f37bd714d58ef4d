package jobs

import (
	"context"
	"fmt"
	"time"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/logger"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/session"
)

// SendFilingReminders warns every account about filing deadlines falling
// inside the configured lead window. Each deadline produces at most one
// unread notification per account; an unread reminder with the same title
// suppresses a duplicate.
func (jr *JobRunner) SendFilingReminders() {
	jr.runWithRecovery("SendFilingReminders", func() {
		ctx := context.Background()
		cfg := jr.config.Reminders
		now := time.Now().UTC()

		deadlines := domain.UpcomingDeadlines(domain.FilingProfile(cfg.Profile), now, cfg.LeadDays)
		if len(deadlines) == 0 {
			logger.Info("No deadlines inside reminder window", "lead_days", cfg.LeadDays)
			return
		}

		users, err := jr.directory.ListUsers(ctx)
		if err != nil {
			logger.Error("Failed to list accounts for reminders", "error", err)
			return
		}

		count := 0
		for _, user := range users {
			for _, deadline := range deadlines {
				sent, err := jr.remindUser(ctx, user, deadline, now)
				if err != nil {
					logger.Error("Failed to send filing reminder",
						"uid", user.UID,
						"return_type", deadline.ReturnType,
						"error", err)
					continue
				}
				if sent {
					count++
				}
			}
		}

		logger.Info("Filing reminders sent", "count", count, "deadlines", len(deadlines), "accounts", len(users))
	})
}

func (jr *JobRunner) remindUser(ctx context.Context, user session.Identity, deadline domain.FilingDeadline, now time.Time) (bool, error) {
	title := fmt.Sprintf("Reminder: %s due %s", deadline.ReturnType, deadline.DueDate.Format("02 Jan 2006"))

	unread, err := jr.store.Notifications.List(ctx, user.UID, repository.Filter{"isRead": false})
	if err != nil {
		return false, err
	}
	for _, n := range unread {
		if n.Title == title {
			return false, nil
		}
	}

	days := int(deadline.DueDate.Sub(now).Hours() / 24)
	note := &domain.Notification{
		Title:     title,
		Message:   fmt.Sprintf("Your %s is due in %d days. File before the deadline to avoid late fees.", deadline.ReturnType, days),
		Type:      domain.NotificationTypeWarning,
		CreatedAt: now,
	}
	if _, err := jr.store.Notifications.Create(ctx, user.UID, note); err != nil {
		return false, err
	}

	if jr.email != nil && !jr.config.Reminders.DryRun && user.Email != "" {
		if err := jr.email.SendFilingReminder(ctx, user.Email, user.DisplayName, deadline); err != nil {
			// The in-app reminder already exists; email failure is logged,
			// not retried.
			logger.Error("Failed to email filing reminder", "uid", user.UID, "error", err)
		}
	}
	return true, nil
}
