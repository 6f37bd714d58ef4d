package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttax-backend/internal/config"
	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/repository/memory"
	"smarttax-backend/internal/session"
)

type fakeDirectory struct {
	users []session.Identity
}

func (f *fakeDirectory) ListUsers(ctx context.Context) ([]session.Identity, error) {
	return f.users, nil
}

type fakeEmail struct {
	reminders []string // recipient emails
}

func (f *fakeEmail) SendSubmissionConfirmation(ctx context.Context, toEmail, toName string, tr *domain.TaxReturn) error {
	return nil
}

func (f *fakeEmail) SendFilingReminder(ctx context.Context, toEmail, toName string, deadline domain.FilingDeadline) error {
	f.reminders = append(f.reminders, toEmail)
	return nil
}

func newRunnerFixture(dryRun bool) (*JobRunner, *repository.Store, *fakeEmail) {
	store := memory.NewStore()
	email := &fakeEmail{}
	cfg := &config.Config{
		Reminders: config.RemindersConfig{
			LeadDays: 14,
			Profile:  "individual",
			DryRun:   dryRun,
		},
	}
	directory := &fakeDirectory{users: []session.Identity{
		{UID: "uid-1", Email: "k@example.com", DisplayName: "Karishma"},
	}}
	return NewJobRunner(store, directory, email, cfg), store, email
}

func TestRemindUserCreatesWarning(t *testing.T) {
	ctx := context.Background()
	jr, store, email := newRunnerFixture(false)

	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	deadline := domain.FilingDeadline{ReturnType: "ITR Filing", DueDate: now.AddDate(0, 0, 10)}
	user := session.Identity{UID: "uid-1", Email: "k@example.com"}

	sent, err := jr.remindUser(ctx, user, deadline, now)
	require.NoError(t, err)
	assert.True(t, sent)

	notes, err := store.Notifications.List(ctx, "uid-1", nil)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationTypeWarning, notes[0].Type)
	assert.Contains(t, notes[0].Title, "ITR Filing")
	assert.Contains(t, notes[0].Message, "10 days")
	assert.False(t, notes[0].IsRead)

	assert.Equal(t, []string{"k@example.com"}, email.reminders)
}

func TestRemindUserDeduplicatesUnread(t *testing.T) {
	ctx := context.Background()
	jr, store, email := newRunnerFixture(false)

	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	deadline := domain.FilingDeadline{ReturnType: "ITR Filing", DueDate: now.AddDate(0, 0, 10)}
	user := session.Identity{UID: "uid-1", Email: "k@example.com"}

	sent, err := jr.remindUser(ctx, user, deadline, now)
	require.NoError(t, err)
	require.True(t, sent)

	// The unread reminder suppresses a second one.
	sent, err = jr.remindUser(ctx, user, deadline, now)
	require.NoError(t, err)
	assert.False(t, sent)

	notes, err := store.Notifications.List(ctx, "uid-1", nil)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Len(t, email.reminders, 1)

	// Once read, the next run reminds again.
	require.NoError(t, store.Notifications.MarkAllAsRead(ctx, "uid-1"))
	sent, err = jr.remindUser(ctx, user, deadline, now)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestRemindUserDryRunSkipsEmail(t *testing.T) {
	ctx := context.Background()
	jr, store, email := newRunnerFixture(true)

	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	deadline := domain.FilingDeadline{ReturnType: "ITR Filing", DueDate: now.AddDate(0, 0, 10)}
	user := session.Identity{UID: "uid-1", Email: "k@example.com"}

	sent, err := jr.remindUser(ctx, user, deadline, now)
	require.NoError(t, err)
	assert.True(t, sent)

	notes, err := store.Notifications.List(ctx, "uid-1", nil)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Empty(t, email.reminders)
}

func TestSendFilingRemindersRecoversFromPanic(t *testing.T) {
	jr, _, _ := newRunnerFixture(false)

	assert.NotPanics(t, func() {
		jr.runWithRecovery("test", func() { panic("boom") })
	})
}
