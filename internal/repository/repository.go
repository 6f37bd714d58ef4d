package repository

import (
	"context"
	"fmt"

	"smarttax-backend/internal/domain"
)

// Collection names under each tenant's document tree.
const (
	CollectionIncome        = "income"
	CollectionDeductions    = "deductions"
	CollectionGST           = "gst"
	CollectionTaxReturns    = "taxReturns"
	CollectionNotifications = "notifications"
	CollectionSummaries     = "summaries"
	CollectionCharts        = "charts"
)

// Filter is a set of ANDed equality predicates over indexed fields. It is the
// only query shape the store supports: no OR, no ranges, no free text.
type Filter map[string]any

// FilterFields returns the indexed fields a collection accepts equality
// filters on. Filtering on anything else is an input error, not a silent
// full scan.
func FilterFields(collection string) map[string]struct{} {
	switch collection {
	case CollectionIncome:
		return map[string]struct{}{"financialYear": {}, "sourceType": {}}
	case CollectionDeductions:
		return map[string]struct{}{"financialYear": {}, "sectionType": {}}
	case CollectionGST:
		return map[string]struct{}{"financialYear": {}, "returnStatus": {}}
	case CollectionTaxReturns:
		return map[string]struct{}{"financialYear": {}, "filingStatus": {}}
	case CollectionNotifications:
		return map[string]struct{}{"isRead": {}, "type": {}}
	}
	return nil
}

// ValidateFilter rejects filters naming fields the collection is not indexed
// on. Shared by every backend so the contract does not drift between them.
func ValidateFilter(collection string, filter Filter) error {
	allowed := FilterFields(collection)
	for field := range filter {
		if _, ok := allowed[field]; !ok {
			return fmt.Errorf("%w: cannot filter %s by %q", domain.ErrInvalidInput, collection, field)
		}
	}
	return nil
}

// Records is the tenant-scoped repository contract shared by all four record
// kinds. One instance serves one collection; the tenant id scopes every call.
type Records[T any] interface {
	// Create persists a new record and returns it with its assigned id.
	Create(ctx context.Context, tenantID string, rec *T) (*T, error)
	// List returns records matching the ANDed equality filter, in
	// store-defined order. An empty result is not an error.
	List(ctx context.Context, tenantID string, filter Filter) ([]T, error)
	// GetByID returns ErrNotFound when the id is absent under this tenant,
	// including ids that exist under a different tenant.
	GetByID(ctx context.Context, tenantID, id string) (*T, error)
	// Update merges the given fields into the document; absent fields are
	// left untouched. ErrNotFound follows the GetByID rule.
	Update(ctx context.Context, tenantID, id string, fields Filter) error
	// Delete removes the document. Deleting a missing id is a no-op.
	Delete(ctx context.Context, tenantID, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, tenantID string, n *domain.Notification) (*domain.Notification, error)
	// List returns notifications newest-first.
	List(ctx context.Context, tenantID string, filter Filter) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, tenantID, id string) error
	// MarkAllAsRead flips every unread notification in one atomic batch.
	MarkAllAsRead(ctx context.Context, tenantID string) error
	Delete(ctx context.Context, tenantID, id string) error
}

type DashboardRepository interface {
	// GetSummary returns (nil, nil) when no summary exists for the year.
	GetSummary(ctx context.Context, tenantID, financialYear string) (*domain.DashboardSummary, error)
	PutSummary(ctx context.Context, tenantID string, summary *domain.DashboardSummary) error
	ListChartData(ctx context.Context, tenantID, financialYear string) ([]domain.ChartData, error)
	AddChartData(ctx context.Context, tenantID string, data *domain.ChartData) error
}

// Store bundles one repository per collection, the way backends hand their
// repositories to service construction.
type Store struct {
	Incomes       Records[domain.Income]
	Deductions    Records[domain.Deduction]
	GSTReturns    Records[domain.GSTReturn]
	TaxReturns    Records[domain.TaxReturn]
	Notifications NotificationRepository
	Dashboards    DashboardRepository
}
