package service

import (
	"context"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/session"
)

type dashboardService struct {
	dashboards repository.DashboardRepository
}

func NewDashboardService(store *repository.Store) DashboardService {
	return &dashboardService{dashboards: store.Dashboards}
}

// GetSummary returns the precomputed rollup, or nil when aggregation has not
// produced one for the year yet. Absence is not an error.
func (s *dashboardService) GetSummary(ctx context.Context, who *session.Identity, financialYear string) (*domain.DashboardSummary, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.dashboards.GetSummary(ctx, uid, financialYear)
}

func (s *dashboardService) GetChartData(ctx context.Context, who *session.Identity, financialYear string) ([]domain.ChartData, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.dashboards.ListChartData(ctx, uid, financialYear)
}
