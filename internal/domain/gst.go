package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type GSTReturnStatus string

const (
	GSTReturnStatusPending  GSTReturnStatus = "pending"
	GSTReturnStatusFiled    GSTReturnStatus = "filed"
	GSTReturnStatusApproved GSTReturnStatus = "approved"
	GSTReturnStatusRejected GSTReturnStatus = "rejected"
)

func (s GSTReturnStatus) Valid() bool {
	switch s {
	case GSTReturnStatusPending, GSTReturnStatusFiled, GSTReturnStatusApproved, GSTReturnStatusRejected:
		return true
	}
	return false
}

// gstRate is the flat rate applied to net supplies when deriving the payable
// amount. There is no slab or per-category rate handling.
var gstRate = decimal.NewFromFloat(0.18)

// ComputeGSTPayable derives the payable amount from outward and inward
// supplies, clamped at zero. Decimal arithmetic avoids float drift on the
// rate multiplication; the result is rounded to whole currency units.
func ComputeGSTPayable(outwardSupplies, inwardSupplies int64) int64 {
	net := decimal.NewFromInt(outwardSupplies - inwardSupplies).Mul(gstRate)
	if net.Sign() < 0 {
		return 0
	}
	return net.Round(0).IntPart()
}

// GSTReturn is one GST filing period for a registered business.
// GSTPayable is derived from the supplies fields, never caller-supplied.
type GSTReturn struct {
	ID              string          `firestore:"-" json:"id"`
	GSTIN           string          `firestore:"gstin" json:"gstin"`
	OutwardSupplies int64           `firestore:"outwardSupplies" json:"outwardSupplies"`
	InwardSupplies  int64           `firestore:"inwardSupplies" json:"inwardSupplies"`
	GSTPayable      int64           `firestore:"gstPayable" json:"gstPayable"`
	ReturnStatus    GSTReturnStatus `firestore:"returnStatus" json:"returnStatus"`
	ReturnPeriod    string          `firestore:"returnPeriod" json:"returnPeriod"`
	FinancialYear   string          `firestore:"financialYear" json:"financialYear"`
	FiledDate       *time.Time      `firestore:"filedDate,omitempty" json:"filedDate,omitempty"`
	CreatedAt       time.Time       `firestore:"createdAt" json:"createdAt"`
}

func (g *GSTReturn) SetID(id string) { g.ID = id }

func (g *GSTReturn) Validate() error {
	if g.GSTIN == "" {
		return fmt.Errorf("%w: gstin is required", ErrInvalidInput)
	}
	if g.OutwardSupplies < 0 || g.InwardSupplies < 0 {
		return fmt.Errorf("%w: supplies must be non-negative", ErrInvalidInput)
	}
	if !g.ReturnStatus.Valid() {
		return fmt.Errorf("%w: unknown return status %q", ErrInvalidInput, g.ReturnStatus)
	}
	if g.FinancialYear == "" {
		return fmt.Errorf("%w: financial year is required", ErrInvalidInput)
	}
	return nil
}
