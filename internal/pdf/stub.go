package pdf

import (
	"fmt"

	"smarttax-backend/internal/domain"
)

// StubGenerator emits a deterministic plain-text payload in place of a real
// document. Tests assert on its output; nothing should ship it to users.
type StubGenerator struct{}

func NewStubGenerator() *StubGenerator {
	return &StubGenerator{}
}

func (g *StubGenerator) Render(tr *domain.TaxReturn) ([]byte, error) {
	return []byte(fmt.Sprintf("Tax Return PDF Content\nfinancialYear=%s\nfilingStatus=%s\n", tr.FinancialYear, tr.FilingStatus)), nil
}
