package domain

import (
	"fmt"
	"time"
)

type FilingStatus string

const (
	FilingStatusDraft      FilingStatus = "draft"
	FilingStatusSubmitted  FilingStatus = "submitted"
	FilingStatusProcessing FilingStatus = "processing"
	FilingStatusApproved   FilingStatus = "approved"
	FilingStatusRejected   FilingStatus = "rejected"
)

func (s FilingStatus) Valid() bool {
	switch s {
	case FilingStatusDraft, FilingStatusSubmitted, FilingStatusProcessing,
		FilingStatusApproved, FilingStatusRejected:
		return true
	}
	return false
}

// TaxReturn is one filing for a financial year. Computed monetary fields are
// zeroed at creation; processing/approved/rejected transitions are driven by
// a back-office process outside this module.
type TaxReturn struct {
	ID                    string       `firestore:"-" json:"id"`
	FinancialYear         string       `firestore:"financialYear" json:"financialYear"`
	TotalIncome           int64        `firestore:"totalIncome" json:"totalIncome"`
	TotalDeductions       int64        `firestore:"totalDeductions" json:"totalDeductions"`
	TaxableIncome         int64        `firestore:"taxableIncome" json:"taxableIncome"`
	EstimatedTax          int64        `firestore:"estimatedTax" json:"estimatedTax"`
	TaxPaid               int64        `firestore:"taxPaid" json:"taxPaid"`
	RefundAmount          int64        `firestore:"refundAmount" json:"refundAmount"`
	FilingStatus          FilingStatus `firestore:"filingStatus" json:"filingStatus"`
	FiledDate             *time.Time   `firestore:"filedDate,omitempty" json:"filedDate,omitempty"`
	AcknowledgementNumber string       `firestore:"acknowledgementNumber,omitempty" json:"acknowledgementNumber,omitempty"`
	CreatedAt             time.Time    `firestore:"createdAt" json:"createdAt"`
}

func (t *TaxReturn) SetID(id string) { t.ID = id }

func (t *TaxReturn) Validate() error {
	if t.FinancialYear == "" {
		return fmt.Errorf("%w: financial year is required", ErrInvalidInput)
	}
	if t.TaxPaid < 0 {
		return fmt.Errorf("%w: tax paid must be non-negative", ErrInvalidInput)
	}
	if !t.FilingStatus.Valid() {
		return fmt.Errorf("%w: unknown filing status %q", ErrInvalidInput, t.FilingStatus)
	}
	return nil
}

// PDFDocument is the rendered representation of a tax return handed back by
// the document-generation boundary.
type PDFDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}
