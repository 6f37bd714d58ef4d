package service

import (
	"context"
	"fmt"
	"time"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/session"
)

type AddIncomeInput struct {
	Source        domain.IncomeSource
	Amount        int64
	Description   string
	FinancialYear string
	ProofDocument string
}

type IncomeFilter struct {
	FinancialYear string
	Source        domain.IncomeSource
}

func (f IncomeFilter) toFilter() repository.Filter {
	filter := repository.Filter{}
	if f.FinancialYear != "" {
		filter["financialYear"] = f.FinancialYear
	}
	if f.Source != "" {
		filter["sourceType"] = f.Source
	}
	return filter
}

// IncomePatch carries partial updates; nil fields are left untouched.
type IncomePatch struct {
	Source        *domain.IncomeSource
	Amount        *int64
	Description   *string
	FinancialYear *string
	ProofDocument *string
}

func (p IncomePatch) toFields() (repository.Filter, error) {
	fields := repository.Filter{}
	if p.Source != nil {
		if !p.Source.Valid() {
			return nil, fmt.Errorf("%w: unknown income source %q", domain.ErrInvalidInput, *p.Source)
		}
		fields["sourceType"] = *p.Source
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

type incomeService struct {
	incomes repository.Records[domain.Income]
}

func NewIncomeService(store *repository.Store) IncomeService {
	return &incomeService{incomes: store.Incomes}
}

func (s *incomeService) Add(ctx context.Context, who *session.Identity, input AddIncomeInput) (*domain.Income, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}

	income := &domain.Income{
		SourceType:    input.Source,
		Amount:        input.Amount,
		Description:   input.Description,
		FinancialYear: input.FinancialYear,
		ProofDocument: input.ProofDocument,
		CreatedAt:     time.Now().UTC(),
	}
	if err := income.Validate(); err != nil {
		return nil, err
	}
	return s.incomes.Create(ctx, uid, income)
}

func (s *incomeService) List(ctx context.Context, who *session.Identity, filter IncomeFilter) ([]domain.Income, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.incomes.List(ctx, uid, filter.toFilter())
}

func (s *incomeService) Get(ctx context.Context, who *session.Identity, id string) (*domain.Income, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.incomes.GetByID(ctx, uid, id)
}

func (s *incomeService) Update(ctx context.Context, who *session.Identity, id string, patch IncomePatch) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	fields, err := patch.toFields()
	if err != nil {
		return err
	}
	return s.incomes.Update(ctx, uid, id, fields)
}

func (s *incomeService) Delete(ctx context.Context, who *session.Identity, id string) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	return s.incomes.Delete(ctx, uid, id)
}

func (s *incomeService) Total(ctx context.Context, who *session.Identity, financialYear string) (int64, error) {
	incomes, err := s.List(ctx, who, IncomeFilter{FinancialYear: financialYear})
	if err != nil {
		return 0, err
	}
	return domain.TotalIncome(incomes), nil
}

func (s *incomeService) TotalBySource(ctx context.Context, who *session.Identity, financialYear string) (map[domain.IncomeSource]int64, error) {
	incomes, err := s.List(ctx, who, IncomeFilter{FinancialYear: financialYear})
	if err != nil {
		return nil, err
	}
	return domain.IncomeBySource(incomes), nil
}
