package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/logger"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/session"
)

type CreateTaxReturnInput struct {
	FinancialYear string
	TaxPaid       int64
}

type TaxReturnFilter struct {
	FinancialYear string
	Status        domain.FilingStatus
}

func (f TaxReturnFilter) toFilter() repository.Filter {
	filter := repository.Filter{}
	if f.FinancialYear != "" {
		filter["financialYear"] = f.FinancialYear
	}
	if f.Status != "" {
		filter["filingStatus"] = f.Status
	}
	return filter
}

// TaxReturnPatch updates the computed figures on a return. Lifecycle fields
// (status, filed date, acknowledgement) move only through Submit.
type TaxReturnPatch struct {
	TotalIncome     *int64
	TotalDeductions *int64
	TaxableIncome   *int64
	EstimatedTax    *int64
	TaxPaid         *int64
	RefundAmount    *int64
}

func (p TaxReturnPatch) toFields() (repository.Filter, error) {
	fields := repository.Filter{}
	if p.TotalIncome != nil {
		fields["totalIncome"] = *p.TotalIncome
	}
	if p.TotalDeductions != nil {
		fields["totalDeductions"] = *p.TotalDeductions
	}
	if p.TaxableIncome != nil {
		fields["taxableIncome"] = *p.TaxableIncome
	}
	if p.EstimatedTax != nil {
		fields["estimatedTax"] = *p.EstimatedTax
	}
	if p.TaxPaid != nil {
		if *p.TaxPaid < 0 {
			return nil, fmt.Errorf("%w: tax paid must be non-negative", domain.ErrInvalidInput)
		}
		fields["taxPaid"] = *p.TaxPaid
	}
	if p.RefundAmount != nil {
		fields["refundAmount"] = *p.RefundAmount
	}
	return fields, nil
}

type taxReturnService struct {
	returns       repository.Records[domain.TaxReturn]
	notifications repository.NotificationRepository
	pdf           PDFGenerator
	email         EmailService
}

// NewTaxReturnService wires the filing workflow. email may be nil when no
// delivery is configured; confirmations are then skipped.
func NewTaxReturnService(store *repository.Store, pdf PDFGenerator, email EmailService) TaxReturnService {
	return &taxReturnService{
		returns:       store.TaxReturns,
		notifications: store.Notifications,
		pdf:           pdf,
		email:         email,
	}
}

func (s *taxReturnService) Create(ctx context.Context, who *session.Identity, input CreateTaxReturnInput) (*domain.TaxReturn, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}

	tr := &domain.TaxReturn{
		FinancialYear: input.FinancialYear,
		TaxPaid:       input.TaxPaid,
		FilingStatus:  domain.FilingStatusDraft,
		CreatedAt:     time.Now().UTC(),
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return s.returns.Create(ctx, uid, tr)
}

func (s *taxReturnService) List(ctx context.Context, who *session.Identity, filter TaxReturnFilter) ([]domain.TaxReturn, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.returns.List(ctx, uid, filter.toFilter())
}

func (s *taxReturnService) Get(ctx context.Context, who *session.Identity, id string) (*domain.TaxReturn, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.returns.GetByID(ctx, uid, id)
}

func (s *taxReturnService) Update(ctx context.Context, who *session.Identity, id string, patch TaxReturnPatch) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	fields, err := patch.toFields()
	if err != nil {
		return err
	}
	return s.returns.Update(ctx, uid, id, fields)
}

func (s *taxReturnService) Delete(ctx context.Context, who *session.Identity, id string) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	return s.returns.Delete(ctx, uid, id)
}

func (s *taxReturnService) Submit(ctx context.Context, who *session.Identity, id string) (*domain.TaxReturn, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}

	tr, err := s.returns.GetByID(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	if tr.FilingStatus != domain.FilingStatusDraft {
		return nil, fmt.Errorf("%w: return is %s, only drafts can be submitted", domain.ErrInvalidState, tr.FilingStatus)
	}

	ack, err := newAcknowledgementNumber()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	fields := repository.Filter{
		"filingStatus":          domain.FilingStatusSubmitted,
		"filedDate":             now,
		"acknowledgementNumber": ack,
	}
	if err := s.returns.Update(ctx, uid, id, fields); err != nil {
		return nil, err
	}

	tr.FilingStatus = domain.FilingStatusSubmitted
	tr.FiledDate = &now
	tr.AcknowledgementNumber = ack

	// Side effects are best-effort: a failed notification or email never
	// rolls back a filed return.
	note := &domain.Notification{
		Title:     "Tax Return Submitted",
		Message:   fmt.Sprintf("Your tax return for %s was submitted. Acknowledgement number: %s", tr.FinancialYear, ack),
		Type:      domain.NotificationTypeSuccess,
		CreatedAt: now,
	}
	if _, err := s.notifications.Create(ctx, uid, note); err != nil {
		logger.Warn("failed to record submission notification", "tenant", uid, "error", err)
	}
	if s.email != nil && who.Email != "" {
		if err := s.email.SendSubmissionConfirmation(ctx, who.Email, who.DisplayName, tr); err != nil {
			logger.Warn("failed to send submission confirmation", "tenant", uid, "error", err)
		}
	}

	return tr, nil
}

func (s *taxReturnService) DownloadPDF(ctx context.Context, who *session.Identity, id string) (*domain.PDFDocument, error) {
	tr, err := s.Get(ctx, who, id)
	if err != nil {
		return nil, err
	}

	data, err := s.pdf.Render(tr)
	if err != nil {
		return nil, fmt.Errorf("render tax return: %w", err)
	}
	return &domain.PDFDocument{
		Filename:    fmt.Sprintf("tax-return-%s.pdf", tr.FinancialYear),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

const ackAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newAcknowledgementNumber builds an ACK- code with nine characters drawn
// uniformly from the uppercase alphanumerics.
func newAcknowledgementNumber() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate acknowledgement number: %w", err)
	}
	for i, b := range buf {
		buf[i] = ackAlphabet[int(b)%len(ackAlphabet)]
	}
	return "ACK-" + string(buf), nil
}
