package memory

import (
	"context"

	"github.com/google/uuid"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
)

type dashboardRepository struct {
	db *DB
}

func newDashboardRepository(db *DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetSummary(ctx context.Context, tenantID, financialYear string) (*domain.DashboardSummary, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	doc, ok := r.db.collection(tenantID, repository.CollectionSummaries)[financialYear]
	if !ok {
		return nil, nil
	}
	var summary domain.DashboardSummary
	if err := decodeDoc(doc, &summary); err != nil {
		return nil, &domain.DecodeError{Collection: repository.CollectionSummaries, DocID: financialYear, Err: err}
	}
	return &summary, nil
}

func (r *dashboardRepository) PutSummary(ctx context.Context, tenantID string, summary *domain.DashboardSummary) error {
	doc, err := encodeDoc(summary)
	if err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.collection(tenantID, repository.CollectionSummaries)[summary.FinancialYear] = doc
	return nil
}

func (r *dashboardRepository) ListChartData(ctx context.Context, tenantID, financialYear string) ([]domain.ChartData, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	filter := repository.Filter{"financialYear": financialYear}
	var out []domain.ChartData
	for id, doc := range r.db.collection(tenantID, repository.CollectionCharts) {
		if !matches(doc, filter) {
			continue
		}
		var data domain.ChartData
		if err := decodeDoc(doc, &data); err != nil {
			return nil, &domain.DecodeError{Collection: repository.CollectionCharts, DocID: id, Err: err}
		}
		out = append(out, data)
	}
	return out, nil
}

func (r *dashboardRepository) AddChartData(ctx context.Context, tenantID string, data *domain.ChartData) error {
	doc, err := encodeDoc(data)
	if err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.collection(tenantID, repository.CollectionCharts)[uuid.NewString()] = doc
	return nil
}
