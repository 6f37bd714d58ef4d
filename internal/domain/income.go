package domain

import (
	"fmt"
	"time"
)

type IncomeSource string

const (
	IncomeSourceSalary       IncomeSource = "salary"
	IncomeSourceBusiness     IncomeSource = "business"
	IncomeSourceCapitalGains IncomeSource = "capital_gains"
	IncomeSourceRental       IncomeSource = "rental"
	IncomeSourceOther        IncomeSource = "other"
)

func (s IncomeSource) Valid() bool {
	switch s {
	case IncomeSourceSalary, IncomeSourceBusiness, IncomeSourceCapitalGains,
		IncomeSourceRental, IncomeSourceOther:
		return true
	}
	return false
}

// Income is a single income line item. Amounts are whole currency units.
type Income struct {
	ID            string       `firestore:"-" json:"id"`
	SourceType    IncomeSource `firestore:"sourceType" json:"sourceType"`
	Amount        int64        `firestore:"amount" json:"amount"`
	Description   string       `firestore:"description,omitempty" json:"description,omitempty"`
	FinancialYear string       `firestore:"financialYear" json:"financialYear"`
	ProofDocument string       `firestore:"proofDocument,omitempty" json:"proofDocument,omitempty"`
	CreatedAt     time.Time    `firestore:"createdAt" json:"createdAt"`
}

func (i *Income) SetID(id string) { i.ID = id }

func (i *Income) Validate() error {
	if !i.SourceType.Valid() {
		return fmt.Errorf("%w: unknown income source %q", ErrInvalidInput, i.SourceType)
	}
	if i.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if i.FinancialYear == "" {
		return fmt.Errorf("%w: financial year is required", ErrInvalidInput)
	}
	return nil
}
