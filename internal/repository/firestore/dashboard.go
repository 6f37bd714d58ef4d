package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/logger"
	"smarttax-backend/internal/repository"
)

type dashboardRepository struct {
	client *firestore.Client
}

func newDashboardRepository(client *firestore.Client) repository.DashboardRepository {
	return &dashboardRepository{client: client}
}

// Summaries are keyed by financial year, one document per year.
func (r *dashboardRepository) GetSummary(ctx context.Context, tenantID, financialYear string) (*domain.DashboardSummary, error) {
	logger.StoreCall("GET", repository.CollectionSummaries, "tenant", tenantID, "financialYear", financialYear)
	snap, err := tenantCollection(r.client, tenantID, repository.CollectionSummaries).Doc(financialYear).Get(ctx)
	if err != nil {
		// A missing summary is the normal pre-aggregation state, not a
		// lookup failure.
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, mapErr(err)
	}

	var summary domain.DashboardSummary
	if err := snap.DataTo(&summary); err != nil {
		return nil, &domain.DecodeError{Collection: repository.CollectionSummaries, DocID: snap.Ref.ID, Err: err}
	}
	return &summary, nil
}

func (r *dashboardRepository) PutSummary(ctx context.Context, tenantID string, summary *domain.DashboardSummary) error {
	logger.StoreCall("SET", repository.CollectionSummaries, "tenant", tenantID, "financialYear", summary.FinancialYear)
	_, err := tenantCollection(r.client, tenantID, repository.CollectionSummaries).Doc(summary.FinancialYear).Set(ctx, summary)
	logger.StoreResult("SET", repository.CollectionSummaries, err)
	return mapErr(err)
}

func (r *dashboardRepository) ListChartData(ctx context.Context, tenantID, financialYear string) ([]domain.ChartData, error) {
	q := tenantCollection(r.client, tenantID, repository.CollectionCharts).
		Where("financialYear", "==", financialYear)

	it := q.Documents(ctx)
	defer it.Stop()

	var out []domain.ChartData
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr(err)
		}
		var data domain.ChartData
		if err := snap.DataTo(&data); err != nil {
			return nil, &domain.DecodeError{Collection: repository.CollectionCharts, DocID: snap.Ref.ID, Err: err}
		}
		out = append(out, data)
	}
	return out, nil
}

func (r *dashboardRepository) AddChartData(ctx context.Context, tenantID string, data *domain.ChartData) error {
	logger.StoreCall("CREATE", repository.CollectionCharts, "tenant", tenantID, "financialYear", data.FinancialYear)
	_, _, err := tenantCollection(r.client, tenantID, repository.CollectionCharts).Add(ctx, data)
	logger.StoreResult("CREATE", repository.CollectionCharts, err)
	return mapErr(err)
}
