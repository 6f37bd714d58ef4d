package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
)

const tenant = "uid-1"

func newIncome() *domain.Income {
	return &domain.Income{
		SourceType:    domain.IncomeSourceSalary,
		Amount:        800000,
		Description:   "Annual Salary",
		FinancialYear: "2025-2026",
		CreatedAt:     time.Now().UTC(),
	}
}

func TestRecordsCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Incomes.Create(ctx, tenant, newIncome())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := store.Incomes.GetByID(ctx, tenant, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, int64(800000), got.Amount)
	assert.Equal(t, domain.IncomeSourceSalary, got.SourceType)
}

func TestRecordsGetNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Incomes.GetByID(ctx, tenant, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecordsTenantIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Incomes.Create(ctx, tenant, newIncome())
	require.NoError(t, err)

	// Another tenant sees neither the record nor its id.
	_, err = store.Incomes.GetByID(ctx, "uid-2", created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	list, err := store.Incomes.List(ctx, "uid-2", nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecordsListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	mk := func(source domain.IncomeSource, year string) {
		income := newIncome()
		income.SourceType = source
		income.FinancialYear = year
		_, err := store.Incomes.Create(ctx, tenant, income)
		require.NoError(t, err)
	}
	mk(domain.IncomeSourceSalary, "2025-2026")
	mk(domain.IncomeSourceBusiness, "2025-2026")
	mk(domain.IncomeSourceSalary, "2024-2025")

	t.Run("Single Field", func(t *testing.T) {
		list, err := store.Incomes.List(ctx, tenant, repository.Filter{"financialYear": "2025-2026"})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Fields AND Together", func(t *testing.T) {
		list, err := store.Incomes.List(ctx, tenant, repository.Filter{
			"financialYear": "2025-2026",
			"sourceType":    domain.IncomeSourceSalary,
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "2025-2026", list[0].FinancialYear)
	})

	t.Run("No Match Is Empty Not Error", func(t *testing.T) {
		list, err := store.Incomes.List(ctx, tenant, repository.Filter{"financialYear": "2030-2031"})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Unknown Field Rejected", func(t *testing.T) {
		_, err := store.Incomes.List(ctx, tenant, repository.Filter{"amount": 800000})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestRecordsUpdateMerges(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Incomes.Create(ctx, tenant, newIncome())
	require.NoError(t, err)

	err = store.Incomes.Update(ctx, tenant, created.ID, repository.Filter{"amount": int64(900000)})
	require.NoError(t, err)

	got, err := store.Incomes.GetByID(ctx, tenant, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(900000), got.Amount)
	// Untouched fields survive the merge.
	assert.Equal(t, "Annual Salary", got.Description)
	assert.Equal(t, "2025-2026", got.FinancialYear)
}

func TestRecordsUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.Incomes.Update(ctx, tenant, "missing", repository.Filter{"amount": int64(1)})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecordsDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Incomes.Create(ctx, tenant, newIncome())
	require.NoError(t, err)

	require.NoError(t, store.Incomes.Delete(ctx, tenant, created.ID))
	_, err = store.Incomes.GetByID(ctx, tenant, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Deleting again is a no-op, not an error.
	assert.NoError(t, store.Incomes.Delete(ctx, tenant, created.ID))
	assert.NoError(t, store.Incomes.Delete(ctx, tenant, "never-existed"))
}

func TestRecordsDecodeFailure(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Incomes.Create(ctx, tenant, newIncome())
	require.NoError(t, err)

	// Corrupt the stored document; reads must fail loudly, not return a
	// zeroed entity.
	err = store.Incomes.Update(ctx, tenant, created.ID, repository.Filter{"amount": "oops"})
	require.NoError(t, err)

	_, err = store.Incomes.GetByID(ctx, tenant, created.ID)
	var decodeErr *domain.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, repository.CollectionIncome, decodeErr.Collection)
	assert.Equal(t, created.ID, decodeErr.DocID)
}

func TestNotificationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	base := time.Now().UTC()
	for i, title := range []string{"oldest", "middle", "newest"} {
		n := &domain.Notification{
			Title:     title,
			Type:      domain.NotificationTypeInfo,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		_, err := store.Notifications.Create(ctx, tenant, n)
		require.NoError(t, err)
	}

	list, err := store.Notifications.List(ctx, tenant, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newest", list[0].Title)
	assert.Equal(t, "middle", list[1].Title)
	assert.Equal(t, "oldest", list[2].Title)
}

func TestNotificationsMarkAsRead(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Notifications.Create(ctx, tenant, &domain.Notification{
		Title:     "Welcome",
		Type:      domain.NotificationTypeSuccess,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, store.Notifications.MarkAsRead(ctx, tenant, created.ID))

	read := true
	list, err := store.Notifications.List(ctx, tenant, repository.Filter{"isRead": read})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)

	assert.True(t, errors.Is(store.Notifications.MarkAsRead(ctx, tenant, "missing"), domain.ErrNotFound))
}

func TestNotificationsMarkAllAsRead(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for i := 0; i < 5; i++ {
		_, err := store.Notifications.Create(ctx, tenant, &domain.Notification{
			Title:     "n",
			Type:      domain.NotificationTypeInfo,
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}
	// Another tenant's mailbox stays untouched.
	_, err := store.Notifications.Create(ctx, "uid-2", &domain.Notification{
		Title:     "other",
		Type:      domain.NotificationTypeInfo,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, store.Notifications.MarkAllAsRead(ctx, tenant))

	unread := false
	list, err := store.Notifications.List(ctx, tenant, repository.Filter{"isRead": unread})
	require.NoError(t, err)
	assert.Empty(t, list)

	otherList, err := store.Notifications.List(ctx, "uid-2", repository.Filter{"isRead": unread})
	require.NoError(t, err)
	assert.Len(t, otherList, 1)
}

func TestDashboardSummaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	t.Run("Absent Summary Is Nil Not Error", func(t *testing.T) {
		summary, err := store.Dashboards.GetSummary(ctx, tenant, "2025-2026")
		require.NoError(t, err)
		assert.Nil(t, summary)
	})

	t.Run("Put Then Get", func(t *testing.T) {
		in := &domain.DashboardSummary{
			TotalIncome:   1250000,
			EstimatedTax:  187500,
			FilingStatus:  "draft",
			FinancialYear: "2025-2026",
		}
		require.NoError(t, store.Dashboards.PutSummary(ctx, tenant, in))

		out, err := store.Dashboards.GetSummary(ctx, tenant, "2025-2026")
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, int64(1250000), out.TotalIncome)
		assert.Equal(t, "draft", out.FilingStatus)
	})
}

func TestDashboardChartData(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	chart := &domain.ChartData{
		FinancialYear: "2025-2026",
		IncomeBySource: []domain.SourceAmount{
			{SourceType: "salary", Amount: 800000},
		},
	}
	require.NoError(t, store.Dashboards.AddChartData(ctx, tenant, chart))

	list, err := store.Dashboards.ListChartData(ctx, tenant, "2025-2026")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(800000), list[0].IncomeBySource[0].Amount)

	other, err := store.Dashboards.ListChartData(ctx, tenant, "2024-2025")
	require.NoError(t, err)
	assert.Empty(t, other)
}
