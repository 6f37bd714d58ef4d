package domain

import (
	"fmt"
	"time"
)

type DeductionSection string

const (
	DeductionSection80C   DeductionSection = "80C"
	DeductionSection80D   DeductionSection = "80D"
	DeductionSection80E   DeductionSection = "80E"
	DeductionSection80G   DeductionSection = "80G"
	DeductionSection80TTA DeductionSection = "80TTA"
	DeductionSection80TTB DeductionSection = "80TTB"
	DeductionSectionOther DeductionSection = "other"
)

func (s DeductionSection) Valid() bool {
	switch s {
	case DeductionSection80C, DeductionSection80D, DeductionSection80E,
		DeductionSection80G, DeductionSection80TTA, DeductionSection80TTB,
		DeductionSectionOther:
		return true
	}
	return false
}

// Deduction is a claimed deduction line item under one section of the tax code.
type Deduction struct {
	ID            string           `firestore:"-" json:"id"`
	SectionType   DeductionSection `firestore:"sectionType" json:"sectionType"`
	Amount        int64            `firestore:"amount" json:"amount"`
	Description   string           `firestore:"description,omitempty" json:"description,omitempty"`
	FinancialYear string           `firestore:"financialYear" json:"financialYear"`
	ProofDocument string           `firestore:"proofDocument,omitempty" json:"proofDocument,omitempty"`
	CreatedAt     time.Time        `firestore:"createdAt" json:"createdAt"`
}

func (d *Deduction) SetID(id string) { d.ID = id }

func (d *Deduction) Validate() error {
	if !d.SectionType.Valid() {
		return fmt.Errorf("%w: unknown deduction section %q", ErrInvalidInput, d.SectionType)
	}
	if d.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if d.FinancialYear == "" {
		return fmt.Errorf("%w: financial year is required", ErrInvalidInput)
	}
	return nil
}
