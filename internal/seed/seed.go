// Package seed loads a demo dataset into one account so a fresh environment
// has something to show on the dashboard.
package seed

import (
	"context"
	"fmt"
	"time"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/logger"
	"smarttax-backend/internal/repository"
)

const financialYear = "2025-2026"

type Seeder struct {
	store *repository.Store
}

func NewSeeder(store *repository.Store) *Seeder {
	return &Seeder{store: store}
}

// Run writes the full demo dataset for one tenant. Running it twice
// duplicates the record collections; it is meant for fresh accounts.
func (s *Seeder) Run(ctx context.Context, tenantID string) error {
	now := time.Now().UTC()

	if err := s.seedIncomes(ctx, tenantID, now); err != nil {
		return fmt.Errorf("seed incomes: %w", err)
	}
	if err := s.seedDeductions(ctx, tenantID, now); err != nil {
		return fmt.Errorf("seed deductions: %w", err)
	}
	if err := s.seedNotifications(ctx, tenantID, now); err != nil {
		return fmt.Errorf("seed notifications: %w", err)
	}
	if err := s.seedDashboard(ctx, tenantID); err != nil {
		return fmt.Errorf("seed dashboard: %w", err)
	}

	logger.Info("Demo data seeded", "tenant", tenantID, "financial_year", financialYear)
	return nil
}

func (s *Seeder) seedIncomes(ctx context.Context, tenantID string, now time.Time) error {
	incomes := []domain.Income{
		{SourceType: domain.IncomeSourceSalary, Amount: 800000, Description: "Annual Salary", FinancialYear: financialYear, CreatedAt: now},
		{SourceType: domain.IncomeSourceBusiness, Amount: 350000, Description: "Freelance Projects", FinancialYear: financialYear, CreatedAt: now},
		{SourceType: domain.IncomeSourceOther, Amount: 100000, Description: "Interest Income", FinancialYear: financialYear, CreatedAt: now},
	}
	for i := range incomes {
		if _, err := s.store.Incomes.Create(ctx, tenantID, &incomes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedDeductions(ctx context.Context, tenantID string, now time.Time) error {
	deductions := []domain.Deduction{
		{SectionType: domain.DeductionSection80C, Amount: 150000, Description: "PPF & LIC", FinancialYear: financialYear, CreatedAt: now},
		{SectionType: domain.DeductionSection80D, Amount: 25000, Description: "Health Insurance", FinancialYear: financialYear, CreatedAt: now},
	}
	for i := range deductions {
		if _, err := s.store.Deductions.Create(ctx, tenantID, &deductions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedNotifications(ctx context.Context, tenantID string, now time.Time) error {
	notifications := []domain.Notification{
		{
			Title:     "Welcome to SmartTax",
			Message:   "Your account is ready. Add income and deductions to see your dashboard fill in.",
			Type:      domain.NotificationTypeSuccess,
			CreatedAt: now.Add(-time.Minute),
		},
		{
			Title:     "ITR Deadline Approaching",
			Message:   "The ITR filing deadline for " + financialYear + " is coming up. File early to avoid the rush.",
			Type:      domain.NotificationTypeWarning,
			CreatedAt: now,
		},
	}
	for i := range notifications {
		if _, err := s.store.Notifications.Create(ctx, tenantID, &notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedDashboard(ctx context.Context, tenantID string) error {
	summary := &domain.DashboardSummary{
		TotalIncome:     1250000,
		TotalDeductions: 250000,
		TaxableIncome:   1000000,
		EstimatedTax:    187500,
		GSTPayable:      425000,
		RefundEstimate:  25000,
		FilingStatus:    string(domain.FilingStatusDraft),
		FinancialYear:   financialYear,
	}
	if err := s.store.Dashboards.PutSummary(ctx, tenantID, summary); err != nil {
		return err
	}

	chart := &domain.ChartData{
		FinancialYear: financialYear,
		IncomeBySource: []domain.SourceAmount{
			{SourceType: string(domain.IncomeSourceSalary), Amount: 800000},
			{SourceType: string(domain.IncomeSourceBusiness), Amount: 350000},
			{SourceType: string(domain.IncomeSourceOther), Amount: 100000},
		},
		DeductionsBySection: []domain.SectionAmount{
			{Section: string(domain.DeductionSection80C), Amount: 150000},
			{Section: string(domain.DeductionSection80D), Amount: 25000},
		},
		MonthlyIncome: []domain.MonthAmount{
			{Month: 4, Amount: 95000}, {Month: 5, Amount: 95000}, {Month: 6, Amount: 110000},
			{Month: 7, Amount: 95000}, {Month: 8, Amount: 120000}, {Month: 9, Amount: 95000},
			{Month: 10, Amount: 130000}, {Month: 11, Amount: 95000}, {Month: 12, Amount: 105000},
			{Month: 1, Amount: 95000}, {Month: 2, Amount: 110000}, {Month: 3, Amount: 105000},
		},
	}
	return s.store.Dashboards.AddChartData(ctx, tenantID, chart)
}
