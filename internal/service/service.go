// Package service implements the application operations over the record
// store. Every method takes the caller's identity explicitly; a nil
// identity (or one without a UID) is rejected with ErrUnauthenticated
// before the store is touched.
package service

import (
	"context"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/session"
)

type IncomeService interface {
	Add(ctx context.Context, who *session.Identity, input AddIncomeInput) (*domain.Income, error)
	List(ctx context.Context, who *session.Identity, filter IncomeFilter) ([]domain.Income, error)
	Get(ctx context.Context, who *session.Identity, id string) (*domain.Income, error)
	Update(ctx context.Context, who *session.Identity, id string, patch IncomePatch) error
	Delete(ctx context.Context, who *session.Identity, id string) error
	Total(ctx context.Context, who *session.Identity, financialYear string) (int64, error)
	TotalBySource(ctx context.Context, who *session.Identity, financialYear string) (map[domain.IncomeSource]int64, error)
}

type DeductionService interface {
	Add(ctx context.Context, who *session.Identity, input AddDeductionInput) (*domain.Deduction, error)
	List(ctx context.Context, who *session.Identity, filter DeductionFilter) ([]domain.Deduction, error)
	Get(ctx context.Context, who *session.Identity, id string) (*domain.Deduction, error)
	Update(ctx context.Context, who *session.Identity, id string, patch DeductionPatch) error
	Delete(ctx context.Context, who *session.Identity, id string) error
	Total(ctx context.Context, who *session.Identity, financialYear string) (int64, error)
	TotalBySection(ctx context.Context, who *session.Identity, financialYear string) (map[domain.DeductionSection]int64, error)
}

type GSTService interface {
	Add(ctx context.Context, who *session.Identity, input AddGSTReturnInput) (*domain.GSTReturn, error)
	List(ctx context.Context, who *session.Identity, filter GSTFilter) ([]domain.GSTReturn, error)
	Get(ctx context.Context, who *session.Identity, id string) (*domain.GSTReturn, error)
	Update(ctx context.Context, who *session.Identity, id string, patch GSTPatch) error
	Delete(ctx context.Context, who *session.Identity, id string) error
	TotalPayable(ctx context.Context, who *session.Identity, financialYear string) (int64, error)
}

type TaxReturnService interface {
	Create(ctx context.Context, who *session.Identity, input CreateTaxReturnInput) (*domain.TaxReturn, error)
	List(ctx context.Context, who *session.Identity, filter TaxReturnFilter) ([]domain.TaxReturn, error)
	Get(ctx context.Context, who *session.Identity, id string) (*domain.TaxReturn, error)
	Update(ctx context.Context, who *session.Identity, id string, patch TaxReturnPatch) error
	Delete(ctx context.Context, who *session.Identity, id string) error
	// Submit moves a draft return to submitted, stamps the filing date and
	// assigns the acknowledgement number. Submitting anything but a draft
	// fails with ErrInvalidState.
	Submit(ctx context.Context, who *session.Identity, id string) (*domain.TaxReturn, error)
	DownloadPDF(ctx context.Context, who *session.Identity, id string) (*domain.PDFDocument, error)
}

type NotificationService interface {
	Notify(ctx context.Context, who *session.Identity, input NotifyInput) (*domain.Notification, error)
	List(ctx context.Context, who *session.Identity, filter NotificationFilter) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, who *session.Identity, id string) error
	MarkAllAsRead(ctx context.Context, who *session.Identity) error
	Delete(ctx context.Context, who *session.Identity, id string) error
}

type DashboardService interface {
	GetSummary(ctx context.Context, who *session.Identity, financialYear string) (*domain.DashboardSummary, error)
	GetChartData(ctx context.Context, who *session.Identity, financialYear string) ([]domain.ChartData, error)
}

// PDFGenerator renders a filed return into bytes. The maroto renderer is
// the real one; tests use the deterministic stub.
type PDFGenerator interface {
	Render(tr *domain.TaxReturn) ([]byte, error)
}

type EmailService interface {
	SendSubmissionConfirmation(ctx context.Context, toEmail, toName string, tr *domain.TaxReturn) error
	SendFilingReminder(ctx context.Context, toEmail, toName string, deadline domain.FilingDeadline) error
}

// authorize is the single gate every operation passes through.
func authorize(who *session.Identity) (string, error) {
	if who == nil || who.UID == "" {
		return "", domain.ErrUnauthenticated
	}
	return who.UID, nil
}
