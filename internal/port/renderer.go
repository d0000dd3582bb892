package port

import (
	"context"

	"quickbill/internal/domain"
)

// InvoiceRenderer produces a PDF document for an invoice. The suggested name
// is deterministic for a given invoice number (invoice_<number>) and carries
// no extension. The same invoice data yields identical layout-relevant output.
type InvoiceRenderer interface {
	Render(ctx context.Context, invoice *domain.Invoice) (pdf []byte, suggestedName string, err error)
}
