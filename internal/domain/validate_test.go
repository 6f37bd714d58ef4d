package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncomeValidate(t *testing.T) {
	valid := Income{
		SourceType:    IncomeSourceSalary,
		Amount:        800000,
		FinancialYear: "2025-2026",
	}

	t.Run("Valid", func(t *testing.T) {
		income := valid
		assert.NoError(t, income.Validate())
	})

	t.Run("Unknown Source", func(t *testing.T) {
		income := valid
		income.SourceType = "pension"
		err := income.Validate()
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("Non-Positive Amount", func(t *testing.T) {
		income := valid
		income.Amount = 0
		assert.True(t, errors.Is(income.Validate(), ErrInvalidInput))

		income.Amount = -100
		assert.True(t, errors.Is(income.Validate(), ErrInvalidInput))
	})

	t.Run("Missing Financial Year", func(t *testing.T) {
		income := valid
		income.FinancialYear = ""
		assert.True(t, errors.Is(income.Validate(), ErrInvalidInput))
	})
}

func TestDeductionValidate(t *testing.T) {
	valid := Deduction{
		SectionType:   DeductionSection80C,
		Amount:        150000,
		FinancialYear: "2025-2026",
	}

	t.Run("Valid", func(t *testing.T) {
		deduction := valid
		assert.NoError(t, deduction.Validate())
	})

	t.Run("Unknown Section", func(t *testing.T) {
		deduction := valid
		deduction.SectionType = "80Z"
		assert.True(t, errors.Is(deduction.Validate(), ErrInvalidInput))
	})

	t.Run("Non-Positive Amount", func(t *testing.T) {
		deduction := valid
		deduction.Amount = 0
		assert.True(t, errors.Is(deduction.Validate(), ErrInvalidInput))
	})
}

func TestGSTReturnValidate(t *testing.T) {
	valid := GSTReturn{
		GSTIN:           "27AAPFU0939F1ZV",
		OutwardSupplies: 500000,
		InwardSupplies:  200000,
		ReturnStatus:    GSTReturnStatusPending,
		FinancialYear:   "2025-2026",
	}

	t.Run("Valid", func(t *testing.T) {
		ret := valid
		assert.NoError(t, ret.Validate())
	})

	t.Run("Missing GSTIN", func(t *testing.T) {
		ret := valid
		ret.GSTIN = ""
		assert.True(t, errors.Is(ret.Validate(), ErrInvalidInput))
	})

	t.Run("Negative Supplies", func(t *testing.T) {
		ret := valid
		ret.InwardSupplies = -1
		assert.True(t, errors.Is(ret.Validate(), ErrInvalidInput))
	})

	t.Run("Unknown Status", func(t *testing.T) {
		ret := valid
		ret.ReturnStatus = "queued"
		assert.True(t, errors.Is(ret.Validate(), ErrInvalidInput))
	})
}

func TestTaxReturnValidate(t *testing.T) {
	valid := TaxReturn{
		FinancialYear: "2025-2026",
		FilingStatus:  FilingStatusDraft,
	}

	t.Run("Valid", func(t *testing.T) {
		tr := valid
		assert.NoError(t, tr.Validate())
	})

	t.Run("Negative Tax Paid", func(t *testing.T) {
		tr := valid
		tr.TaxPaid = -1
		assert.True(t, errors.Is(tr.Validate(), ErrInvalidInput))
	})

	t.Run("Unknown Filing Status", func(t *testing.T) {
		tr := valid
		tr.FilingStatus = "filed"
		assert.True(t, errors.Is(tr.Validate(), ErrInvalidInput))
	})
}

func TestNotificationValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		n := Notification{Title: "Welcome", Type: NotificationTypeInfo}
		assert.NoError(t, n.Validate())
	})

	t.Run("Missing Title", func(t *testing.T) {
		n := Notification{Type: NotificationTypeInfo}
		assert.True(t, errors.Is(n.Validate(), ErrInvalidInput))
	})

	t.Run("Unknown Type", func(t *testing.T) {
		n := Notification{Title: "Welcome", Type: "urgent"}
		assert.True(t, errors.Is(n.Validate(), ErrInvalidInput))
	})
}

func TestDecodeErrorUnwrap(t *testing.T) {
	cause := errors.New("field amount is string")
	err := &DecodeError{Collection: "income", DocID: "abc", Err: cause}

	assert.Contains(t, err.Error(), "income/abc")
	assert.True(t, errors.Is(err, cause))
}
