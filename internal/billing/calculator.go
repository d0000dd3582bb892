// Package billing computes invoice totals from line items and tax rates.
//
// All derived amounts are rounded to two decimal places, half away from zero,
// independently before summing. The grand total is computed from the rounded
// components, so displayed line totals always reconcile with the displayed
// grand total to the cent.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"quickbill/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeTotals derives invoice totals from line items and tax configuration.
//
//	subTotal    = round2(Σ unitPrice_i × quantity_i)
//	cgstAmount  = round2(subTotal × cgstRate / 100)
//	sgstAmount  = round2(subTotal × sgstRate / 100)
//	discount    = round2(subTotal × discountRate / 100)
//	grandTotal  = round2(subTotal - discount + cgstAmount + sgstAmount)
//
// An empty item list yields all zeros. Negative prices, quantities below one,
// and rates outside [0,100] are rejected with domain.ErrInvalidInput; the UI
// permits free-text rate entry and must not reach this function unvalidated.
func ComputeTotals(items []domain.LineItem, cfg domain.TaxConfiguration) (domain.InvoiceTotals, error) {
	if err := validateRates(cfg); err != nil {
		return domain.InvoiceTotals{}, err
	}

	subTotal := decimal.Zero
	for i, item := range items {
		if item.UnitPrice.IsNegative() {
			return domain.InvoiceTotals{}, fmt.Errorf("%w: item %d has negative unit price", domain.ErrInvalidInput, i)
		}
		if item.Quantity < 1 {
			return domain.InvoiceTotals{}, fmt.Errorf("%w: item %d has quantity below 1", domain.ErrInvalidInput, i)
		}
		subTotal = subTotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	subTotal = round2(subTotal)

	cgst := round2(subTotal.Mul(cfg.CGSTRate).Div(oneHundred))
	sgst := round2(subTotal.Mul(cfg.SGSTRate).Div(oneHundred))
	discount := round2(subTotal.Mul(cfg.DiscountRate).Div(oneHundred))
	grand := round2(subTotal.Sub(discount).Add(cgst).Add(sgst))

	return domain.InvoiceTotals{
		SubTotal:       subTotal,
		CGSTAmount:     cgst,
		SGSTAmount:     sgst,
		DiscountAmount: discount,
		GrandTotal:     grand,
	}, nil
}

func validateRates(cfg domain.TaxConfiguration) error {
	for _, r := range []struct {
		name string
		rate decimal.Decimal
	}{
		{"cgst_rate", cfg.CGSTRate},
		{"sgst_rate", cfg.SGSTRate},
		{"discount_rate", cfg.DiscountRate},
	} {
		if r.rate.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, r.name)
		}
		if r.rate.GreaterThan(oneHundred) {
			return fmt.Errorf("%w: %s must not exceed 100", domain.ErrInvalidInput, r.name)
		}
	}
	return nil
}

// round2 rounds to two decimal places, half away from zero.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatAmount renders a decimal amount for display with exactly two decimal
// places, matching the persisted rounding.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
