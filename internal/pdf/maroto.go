// Package pdf renders a tax return into a downloadable document.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"smarttax-backend/internal/domain"
)

type MarotoGenerator struct{}

func NewMarotoGenerator() *MarotoGenerator {
	return &MarotoGenerator{}
}

func (g *MarotoGenerator) Render(tr *domain.TaxReturn) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(15,
		text.NewCol(12, "Income Tax Return", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Financial year: "+tr.FinancialYear, props.Text{Top: 0}),
			text.New("Filing status: "+string(tr.FilingStatus), props.Text{Top: 4}),
			text.New(filedDateLine(tr), props.Text{Top: 8}),
			text.New(acknowledgementLine(tr), props.Text{Top: 12}),
		),
		col.New(6),
	)

	m.AddRow(10,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(6, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range []struct {
		label  string
		amount int64
	}{
		{"Total income", tr.TotalIncome},
		{"Total deductions", tr.TotalDeductions},
		{"Taxable income", tr.TaxableIncome},
		{"Estimated tax", tr.EstimatedTax},
		{"Tax paid", tr.TaxPaid},
		{"Refund amount", tr.RefundAmount},
	} {
		m.AddRow(8,
			text.NewCol(6, line.label, props.Text{Size: 9}),
			text.NewCol(6, fmt.Sprintf("%d", line.amount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func filedDateLine(tr *domain.TaxReturn) string {
	if tr.FiledDate == nil {
		return "Filed date: -"
	}
	return "Filed date: " + tr.FiledDate.Format("02 Jan 2006")
}

func acknowledgementLine(tr *domain.TaxReturn) string {
	if tr.AcknowledgementNumber == "" {
		return "Acknowledgement number: -"
	}
	return "Acknowledgement number: " + tr.AcknowledgementNumber
}
