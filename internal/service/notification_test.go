package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttax-backend/internal/domain"
)

func TestNotificationServiceMailbox(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(newTestStore())

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		_, err := svc.Notify(ctx, testUser, NotifyInput{
			Title:   title,
			Message: "m",
			Type:    domain.NotificationTypeInfo,
		})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond) // distinct createdAt ordering
	}

	t.Run("Newest First", func(t *testing.T) {
		list, err := svc.List(ctx, testUser, NotificationFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "third", list[0].Title)
		assert.Equal(t, "first", list[2].Title)
	})

	t.Run("Mark One", func(t *testing.T) {
		list, err := svc.List(ctx, testUser, NotificationFilter{})
		require.NoError(t, err)
		require.NoError(t, svc.MarkAsRead(ctx, testUser, list[0].ID))

		unread := false
		remaining, err := svc.List(ctx, testUser, NotificationFilter{IsRead: &unread})
		require.NoError(t, err)
		assert.Len(t, remaining, 2)
	})

	t.Run("Mark All", func(t *testing.T) {
		require.NoError(t, svc.MarkAllAsRead(ctx, testUser))

		unread := false
		remaining, err := svc.List(ctx, testUser, NotificationFilter{IsRead: &unread})
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("Delete", func(t *testing.T) {
		list, err := svc.List(ctx, testUser, NotificationFilter{})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, testUser, list[0].ID))

		after, err := svc.List(ctx, testUser, NotificationFilter{})
		require.NoError(t, err)
		assert.Len(t, after, 2)
	})
}

func TestNotificationServiceFilterByType(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(newTestStore())

	_, err := svc.Notify(ctx, testUser, NotifyInput{Title: "w", Type: domain.NotificationTypeWarning})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, testUser, NotifyInput{Title: "i", Type: domain.NotificationTypeInfo})
	require.NoError(t, err)

	warnings, err := svc.List(ctx, testUser, NotificationFilter{Type: domain.NotificationTypeWarning})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "w", warnings[0].Title)
}

func TestNotificationServiceValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(newTestStore())

	_, err := svc.Notify(ctx, testUser, NotifyInput{Type: domain.NotificationTypeInfo})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.Notify(ctx, nil, NotifyInput{Title: "t", Type: domain.NotificationTypeInfo})
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestDashboardService(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	svc := NewDashboardService(store)

	t.Run("Absent Summary Is Nil", func(t *testing.T) {
		summary, err := svc.GetSummary(ctx, testUser, "2025-2026")
		require.NoError(t, err)
		assert.Nil(t, summary)
	})

	t.Run("Pass-Through", func(t *testing.T) {
		require.NoError(t, store.Dashboards.PutSummary(ctx, testUser.UID, &domain.DashboardSummary{
			TotalIncome:   1250000,
			FinancialYear: "2025-2026",
		}))
		require.NoError(t, store.Dashboards.AddChartData(ctx, testUser.UID, &domain.ChartData{
			FinancialYear: "2025-2026",
		}))

		summary, err := svc.GetSummary(ctx, testUser, "2025-2026")
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, int64(1250000), summary.TotalIncome)

		charts, err := svc.GetChartData(ctx, testUser, "2025-2026")
		require.NoError(t, err)
		assert.Len(t, charts, 1)
	})

	t.Run("Requires Identity", func(t *testing.T) {
		_, err := svc.GetSummary(ctx, nil, "2025-2026")
		assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
	})
}
