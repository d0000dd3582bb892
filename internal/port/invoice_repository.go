package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quickbill/internal/domain"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Status    domain.InvoiceStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// InvoiceRepository persists invoices, identified by (enterprise_id,
// invoice_number).
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, enterpriseID uuid.UUID, filter InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	// ListByIDs fetches a chosen set of invoices. Unknown ids are skipped.
	ListByIDs(ctx context.Context, enterpriseID uuid.UUID, ids []uuid.UUID) ([]domain.Invoice, error)
	UpdateStatus(ctx context.Context, enterpriseID, id uuid.UUID, status domain.InvoiceStatus) error
	// MarkWhatsappSent flips the invoice to sent status and records the
	// delivery timestamp. Last write wins for concurrent sends.
	MarkWhatsappSent(ctx context.Context, enterpriseID uuid.UUID, invoiceNumber string, sentAt time.Time) error
	Stats(ctx context.Context, enterpriseID uuid.UUID) (*domain.InvoiceStats, []domain.MonthlyInvoiceStats, error)
}
