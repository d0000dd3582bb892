// Package export builds spreadsheet exports of invoice batches for
// accountants and GST filing.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"quickbill/internal/domain"
)

const sheetName = "Invoices"

// columns defines the export header row (14 columns).
var columns = []string{
	"Invoice Number",
	"Date of Issue",
	"Status",
	"Bill To",
	"Phone",
	"Subtotal",
	"CGST",
	"SGST",
	"Discount",
	"Total",
	"Currency",
	"WhatsApp Sent",
	"Sent At",
	"Created At",
}

// WriteInvoices writes an xlsx workbook with one row per invoice to w.
// Amounts are written as numbers so spreadsheet formulas work on them.
func WriteInvoices(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("export: renaming sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("export: header cell %d: %w", i, err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("export: writing header: %w", err)
		}
	}

	for r := range invoices {
		row := invoiceToRow(&invoices[r])
		for i, val := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return fmt.Errorf("export: cell (%d,%d): %w", i, r, err)
			}
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("export: writing invoice %s: %w", invoices[r].InvoiceNumber, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: writing workbook: %w", err)
	}
	return nil
}

// invoiceToRow converts a single invoice to a 14-element row.
func invoiceToRow(inv *domain.Invoice) []interface{} {
	subTotal, _ := inv.SubTotal.Float64()
	cgst, _ := inv.CGSTAmount.Float64()
	sgst, _ := inv.SGSTAmount.Float64()
	discount, _ := inv.DiscountAmount.Float64()
	total, _ := inv.Total.Float64()

	return []interface{}{
		inv.InvoiceNumber,
		inv.DateOfIssue.Format("2006-01-02"),
		string(inv.Status),
		inv.BillTo.Name,
		inv.BillTo.Phone,
		subTotal,
		cgst,
		sgst,
		discount,
		total,
		inv.Currency,
		formatBool(inv.WhatsappSent),
		formatTime(inv.WhatsappSentAt),
		inv.CreatedAt.Format(time.RFC3339),
	}
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
