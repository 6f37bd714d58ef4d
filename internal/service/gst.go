package service

import (
	"context"
	"fmt"
	"time"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/session"
)

type AddGSTReturnInput struct {
	GSTIN           string
	OutwardSupplies int64
	InwardSupplies  int64
	ReturnPeriod    string
	FinancialYear   string
}

type GSTFilter struct {
	FinancialYear string
	Status        domain.GSTReturnStatus
}

func (f GSTFilter) toFilter() repository.Filter {
	filter := repository.Filter{}
	if f.FinancialYear != "" {
		filter["financialYear"] = f.FinancialYear
	}
	if f.Status != "" {
		filter["returnStatus"] = f.Status
	}
	return filter
}

type GSTPatch struct {
	GSTIN           *string
	OutwardSupplies *int64
	InwardSupplies  *int64
	Status          *domain.GSTReturnStatus
	ReturnPeriod    *string
	FinancialYear   *string
	FiledDate       *time.Time
}

func (p GSTPatch) toFields() (repository.Filter, error) {
	fields := repository.Filter{}
	if p.GSTIN != nil {
		if *p.GSTIN == "" {
			return nil, fmt.Errorf("%w: gstin is required", domain.ErrInvalidInput)
		}
		fields["gstin"] = *p.GSTIN
	}
	if p.OutwardSupplies != nil {
		if *p.OutwardSupplies < 0 {
			return nil, fmt.Errorf("%w: supplies must be non-negative", domain.ErrInvalidInput)
		}
		fields["outwardSupplies"] = *p.OutwardSupplies
	}
	if p.InwardSupplies != nil {
		if *p.InwardSupplies < 0 {
			return nil, fmt.Errorf("%w: supplies must be non-negative", domain.ErrInvalidInput)
		}
		fields["inwardSupplies"] = *p.InwardSupplies
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown return status %q", domain.ErrInvalidInput, *p.Status)
		}
		fields["returnStatus"] = *p.Status
	}
	if p.ReturnPeriod != nil {
		fields["returnPeriod"] = *p.ReturnPeriod
	}
	if p.FinancialYear != nil {
		if *p.FinancialYear == "" {
			return nil, fmt.Errorf("%w: financial year is required", domain.ErrInvalidInput)
		}
		fields["financialYear"] = *p.FinancialYear
	}
	if p.FiledDate != nil {
		fields["filedDate"] = *p.FiledDate
	}
	return fields, nil
}

type gstService struct {
	returns repository.Records[domain.GSTReturn]
}

func NewGSTService(store *repository.Store) GSTService {
	return &gstService{returns: store.GSTReturns}
}

func (s *gstService) Add(ctx context.Context, who *session.Identity, input AddGSTReturnInput) (*domain.GSTReturn, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}

	ret := &domain.GSTReturn{
		GSTIN:           input.GSTIN,
		OutwardSupplies: input.OutwardSupplies,
		InwardSupplies:  input.InwardSupplies,
		GSTPayable:      domain.ComputeGSTPayable(input.OutwardSupplies, input.InwardSupplies),
		ReturnStatus:    domain.GSTReturnStatusPending,
		ReturnPeriod:    input.ReturnPeriod,
		FinancialYear:   input.FinancialYear,
		CreatedAt:       time.Now().UTC(),
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return s.returns.Create(ctx, uid, ret)
}

func (s *gstService) List(ctx context.Context, who *session.Identity, filter GSTFilter) ([]domain.GSTReturn, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.returns.List(ctx, uid, filter.toFilter())
}

func (s *gstService) Get(ctx context.Context, who *session.Identity, id string) (*domain.GSTReturn, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.returns.GetByID(ctx, uid, id)
}

// Update recomputes the payable amount whenever either supplies figure
// changes, merging the patch over the stored figures first. The payable
// field itself is never caller-writable.
func (s *gstService) Update(ctx context.Context, who *session.Identity, id string, patch GSTPatch) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	fields, err := patch.toFields()
	if err != nil {
		return err
	}

	if patch.OutwardSupplies != nil || patch.InwardSupplies != nil {
		current, err := s.returns.GetByID(ctx, uid, id)
		if err != nil {
			return err
		}
		outward := current.OutwardSupplies
		inward := current.InwardSupplies
		if patch.OutwardSupplies != nil {
			outward = *patch.OutwardSupplies
		}
		if patch.InwardSupplies != nil {
			inward = *patch.InwardSupplies
		}
		fields["gstPayable"] = domain.ComputeGSTPayable(outward, inward)
	}

	return s.returns.Update(ctx, uid, id, fields)
}

func (s *gstService) Delete(ctx context.Context, who *session.Identity, id string) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	return s.returns.Delete(ctx, uid, id)
}

func (s *gstService) TotalPayable(ctx context.Context, who *session.Identity, financialYear string) (int64, error) {
	returns, err := s.List(ctx, who, GSTFilter{FinancialYear: financialYear})
	if err != nil {
		return 0, err
	}
	return domain.TotalGSTPayable(returns), nil
}
