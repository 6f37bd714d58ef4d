package service

import (
	"context"
	"fmt"
	"time"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/session"
)

type AddDeductionInput struct {
	Section       domain.DeductionSection
	Amount        int64
	Description   string
	FinancialYear string
	ProofDocument string
}

type DeductionFilter struct {
	FinancialYear string
	Section       domain.DeductionSection
}

func (f DeductionFilter) toFilter() repository.Filter {
	filter := repository.Filter{}
	if f.FinancialYear != "" {
		filter["financialYear"] = f.FinancialYear
	}
	if f.Section != "" {
		filter["sectionType"] = f.Section
	}
	return filter
}

type DeductionPatch struct {
	Section       *domain.DeductionSection
	Amount        *int64
	Description   *string
	FinancialYear *string
	ProofDocument *string
}

func (p DeductionPatch) toFields() (repository.Filter, error) {
	fields := repository.Filter{}
	if p.Section != nil {
		if !p.Section.Valid() {
			return nil, fmt.Errorf("%w: unknown deduction section %q", domain.ErrInvalidInput, *p.Section)
		}
		fields["sectionType"] = *p.Section
	}
	if p.Amount != nil {
		if *p.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
		}
		fields["amount"] = *p.Amount
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.FinancialYear != nil {
		if *p.FinancialYear == "" {
			return nil, fmt.Errorf("%w: financial year is required", domain.ErrInvalidInput)
		}
		fields["financialYear"] = *p.FinancialYear
	}
	if p.ProofDocument != nil {
		fields["proofDocument"] = *p.ProofDocument
	}
	return fields, nil
}

type deductionService struct {
	deductions repository.Records[domain.Deduction]
}

func NewDeductionService(store *repository.Store) DeductionService {
	return &deductionService{deductions: store.Deductions}
}

func (s *deductionService) Add(ctx context.Context, who *session.Identity, input AddDeductionInput) (*domain.Deduction, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}

	deduction := &domain.Deduction{
		SectionType:   input.Section,
		Amount:        input.Amount,
		Description:   input.Description,
		FinancialYear: input.FinancialYear,
		ProofDocument: input.ProofDocument,
		CreatedAt:     time.Now().UTC(),
	}
	if err := deduction.Validate(); err != nil {
		return nil, err
	}
	return s.deductions.Create(ctx, uid, deduction)
}

func (s *deductionService) List(ctx context.Context, who *session.Identity, filter DeductionFilter) ([]domain.Deduction, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.deductions.List(ctx, uid, filter.toFilter())
}

func (s *deductionService) Get(ctx context.Context, who *session.Identity, id string) (*domain.Deduction, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.deductions.GetByID(ctx, uid, id)
}

func (s *deductionService) Update(ctx context.Context, who *session.Identity, id string, patch DeductionPatch) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	fields, err := patch.toFields()
	if err != nil {
		return err
	}
	return s.deductions.Update(ctx, uid, id, fields)
}

func (s *deductionService) Delete(ctx context.Context, who *session.Identity, id string) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	return s.deductions.Delete(ctx, uid, id)
}

func (s *deductionService) Total(ctx context.Context, who *session.Identity, financialYear string) (int64, error) {
	deductions, err := s.List(ctx, who, DeductionFilter{FinancialYear: financialYear})
	if err != nil {
		return 0, err
	}
	return domain.TotalDeductions(deductions), nil
}

func (s *deductionService) TotalBySection(ctx context.Context, who *session.Identity, financialYear string) (map[domain.DeductionSection]int64, error) {
	deductions, err := s.List(ctx, who, DeductionFilter{FinancialYear: financialYear})
	if err != nil {
		return nil, err
	}
	return domain.DeductionsBySection(deductions), nil
}
