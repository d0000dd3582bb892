// Package render generates the printable invoice document. The layout mirrors
// the on-screen invoice preview: header with number and date, bill-from and
// bill-to blocks, the line item table, and the totals block with CGST/SGST and
// discount lines.
package render

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"quickbill/internal/billing"
	"quickbill/internal/domain"
)

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray    = &props.Color{Red: 108, Green: 117, Blue: 125}
)

// MarotoRenderer implements port.InvoiceRenderer using Maroto v2.
type MarotoRenderer struct{}

// NewMarotoRenderer constructs the renderer.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// SuggestedName returns the deterministic document name for an invoice number.
func SuggestedName(invoiceNumber string) string {
	return "invoice_" + invoiceNumber
}

// Render generates the invoice PDF and returns its bytes with the suggested
// document name.
func (g *MarotoRenderer) Render(_ context.Context, invoice *domain.Invoice) ([]byte, string, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.InvoiceNumber, true).
		WithAuthor(invoice.BillFrom.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(invoice) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range totalsRows(invoice) {
		m.AddRows(r)
	}

	if invoice.Notes != "" {
		m.AddRows(line.NewRow(2))
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Notes: "+invoice.Notes, props.Text{Size: 8, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("render: generating invoice document: %w", err)
	}
	return doc.GetBytes(), SuggestedName(invoice.InvoiceNumber), nil
}

func headerRow(invoice *domain.Invoice) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(invoice.BillFrom.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Invoice #"+invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Date: "+invoice.DateOfIssue.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func partiesRow(invoice *domain.Invoice) core.Row {
	return row.New(24).Add(
		partyCol("Bill From", invoice.BillFrom),
		partyCol("Bill To", invoice.BillTo),
	)
}

func partyCol(label string, p domain.Party) core.Col {
	return col.New(6).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
		text.New(p.Name, props.Text{Size: 9, Top: 6}),
		text.New(p.Address, props.Text{Size: 8, Top: 11, Color: colorGray}),
		text.New(p.Email+"  "+p.Phone, props.Text{Size: 8, Top: 16, Color: colorGray}),
	)
}

func itemsHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Align: align.Right}
	return row.New(7).Add(
		col.New(1).Add(text.New("Qty", header)),
		col.New(6).Add(text.New("Item", header)),
		col.New(2).Add(text.New("Price", headerRight)),
		col.New(3).Add(text.New("Amount", headerRight)),
	)
}

func itemRows(invoice *domain.Invoice) []core.Row {
	rows := make([]core.Row, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		amount := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		name := item.Name
		if item.Description != "" {
			name += " - " + item.Description
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.Quantity), props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(money(invoice.Currency, item.UnitPrice), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(3).Add(text.New(money(invoice.Currency, amount), props.Text{Size: 8, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

func totalsRows(invoice *domain.Invoice) []core.Row {
	rows := []core.Row{
		totalsLine("Subtotal", money(invoice.Currency, invoice.SubTotal), false),
	}
	if !invoice.DiscountRate.IsZero() {
		label := fmt.Sprintf("Discount (%s%%)", invoice.DiscountRate.String())
		rows = append(rows, totalsLine(label, "-"+money(invoice.Currency, invoice.DiscountAmount), false))
	}
	if !invoice.CGSTRate.IsZero() {
		label := fmt.Sprintf("CGST (%s%%)", invoice.CGSTRate.String())
		rows = append(rows, totalsLine(label, money(invoice.Currency, invoice.CGSTAmount), false))
	}
	if !invoice.SGSTRate.IsZero() {
		label := fmt.Sprintf("SGST (%s%%)", invoice.SGSTRate.String())
		rows = append(rows, totalsLine(label, money(invoice.Currency, invoice.SGSTAmount), false))
	}
	rows = append(rows, totalsLine("Total", money(invoice.Currency, invoice.Total), true))
	return rows
}

func totalsLine(label, value string, bold bool) core.Row {
	style := fontstyle.Normal
	size := 9.0
	if bold {
		style = fontstyle.Bold
		size = 11
	}
	return row.New(6).Add(
		col.New(7),
		col.New(2).Add(text.New(label, props.Text{Style: style, Size: size, Top: 1, Align: align.Right})),
		col.New(3).Add(text.New(value, props.Text{Style: style, Size: size, Top: 1, Align: align.Right})),
	)
}

func money(currency string, d decimal.Decimal) string {
	return currency + billing.FormatAmount(d)
}
