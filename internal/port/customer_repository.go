package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quickbill/internal/domain"
)

// CustomerRepository persists enterprise-scoped customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*domain.Customer, error)
	GetByPhone(ctx context.Context, enterpriseID uuid.UUID, phone string) (*domain.Customer, error)
	List(ctx context.Context, enterpriseID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, c *domain.Customer) error
	// AddInvoiceStats increments the denormalized invoice counters after an
	// invoice is created for the customer.
	AddInvoiceStats(ctx context.Context, enterpriseID, id uuid.UUID, amount decimal.Decimal, at time.Time) error
	// Stats aggregates the customer base and returns the top and most recent
	// customers by billed amount and creation time respectively.
	Stats(ctx context.Context, enterpriseID uuid.UUID) (*domain.CustomerStats, []domain.Customer, []domain.Customer, error)
}
