package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quickbill/internal/billing"
	"quickbill/internal/domain"
	"quickbill/internal/port"
)

// LineItemInput is the DTO for a single invoice line.
type LineItemInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
}

// CreateInvoiceInput is the DTO for invoice creation. Client-supplied totals
// are ignored; the server recomputes them from the items and rates.
type CreateInvoiceInput struct {
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	DateOfIssue   time.Time       `json:"dateOfIssue" binding:"required"`
	BillFrom      domain.Party    `json:"billFrom"`
	BillTo        domain.Party    `json:"billTo" binding:"required"`
	Items         []LineItemInput `json:"items" binding:"required,min=1,dive"`
	Notes         string          `json:"notes"`
	CGSTRate      decimal.Decimal `json:"cgstRate"`
	SGSTRate      decimal.Decimal `json:"sgstRate"`
	DiscountRate  decimal.Decimal `json:"discountRate"`
	Currency      string          `json:"currency"`
}

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	Create(ctx context.Context, enterpriseID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, enterpriseID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	ListByIDs(ctx context.Context, enterpriseID uuid.UUID, ids []uuid.UUID) ([]domain.Invoice, error)
	UpdateStatus(ctx context.Context, enterpriseID, id uuid.UUID, status domain.InvoiceStatus) error
	MarkWhatsappSent(ctx context.Context, enterpriseID, id uuid.UUID) error
	Stats(ctx context.Context, enterpriseID uuid.UUID) (*domain.InvoiceStats, []domain.MonthlyInvoiceStats, error)
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	customerRepo port.CustomerRepository
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(invoiceRepo port.InvoiceRepository, customerRepo port.CustomerRepository) InvoiceService {
	return &invoiceService{invoiceRepo: invoiceRepo, customerRepo: customerRepo}
}

func (s *invoiceService) Create(ctx context.Context, enterpriseID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	items := make([]domain.LineItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, domain.LineItem{
			Name:        in.Name,
			Description: in.Description,
			UnitPrice:   in.Price,
			Quantity:    in.Quantity,
		})
	}

	cfg := domain.TaxConfiguration{
		CGSTRate:     input.CGSTRate,
		SGSTRate:     input.SGSTRate,
		DiscountRate: input.DiscountRate,
	}
	totals, err := billing.ComputeTotals(items, cfg)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	invoice := &domain.Invoice{
		EnterpriseID:  enterpriseID,
		InvoiceNumber: input.InvoiceNumber,
		DateOfIssue:   input.DateOfIssue,
		BillFrom:      input.BillFrom,
		BillTo:        input.BillTo,
		Items:         items,
		Notes:         input.Notes,
		CGSTRate:      input.CGSTRate,
		SGSTRate:      input.SGSTRate,
		DiscountRate:  input.DiscountRate,
		Currency:      currency,
		Status:        domain.InvoiceStatusDraft,
	}
	invoice.ApplyTotals(totals)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("invoiceService.Create: %w", err)
	}

	if err := s.upsertCustomer(ctx, enterpriseID, invoice); err != nil {
		// The invoice itself is committed; stats drift is tolerable.
		log.Printf("invoiceService.Create: customer upsert for invoice %s failed: %v", invoice.InvoiceNumber, err)
	}

	return invoice, nil
}

// upsertCustomer finds the bill-to customer by phone, creating it on first
// invoice, and bumps the denormalized stats.
func (s *invoiceService) upsertCustomer(ctx context.Context, enterpriseID uuid.UUID, invoice *domain.Invoice) error {
	if invoice.BillTo.Phone == "" {
		return nil
	}

	customer, err := s.customerRepo.GetByPhone(ctx, enterpriseID, invoice.BillTo.Phone)
	if errors.Is(err, domain.ErrNotFound) {
		customer = &domain.Customer{
			EnterpriseID: enterpriseID,
			Name:         invoice.BillTo.Name,
			Email:        invoice.BillTo.Email,
			Phone:        invoice.BillTo.Phone,
			Address:      invoice.BillTo.Address,
			Status:       domain.CustomerStatusActive,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return fmt.Errorf("creating customer: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("looking up customer: %w", err)
	}

	return s.customerRepo.AddInvoiceStats(ctx, enterpriseID, customer.ID, invoice.Total, time.Now().UTC())
}

func (s *invoiceService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, enterpriseID, id)
}

func (s *invoiceService) List(ctx context.Context, enterpriseID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, enterpriseID, filter, offset, limit)
}

func (s *invoiceService) ListByIDs(ctx context.Context, enterpriseID uuid.UUID, ids []uuid.UUID) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListByIDs(ctx, enterpriseID, ids)
}

func (s *invoiceService) UpdateStatus(ctx context.Context, enterpriseID, id uuid.UUID, status domain.InvoiceStatus) error {
	if !domain.ValidInvoiceStatuses[status] {
		return fmt.Errorf("%w: unknown invoice status %q", domain.ErrInvalidInput, status)
	}
	return s.invoiceRepo.UpdateStatus(ctx, enterpriseID, id, status)
}

func (s *invoiceService) MarkWhatsappSent(ctx context.Context, enterpriseID, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, enterpriseID, id)
	if err != nil {
		return err
	}
	return s.invoiceRepo.MarkWhatsappSent(ctx, enterpriseID, invoice.InvoiceNumber, time.Now().UTC())
}

func (s *invoiceService) Stats(ctx context.Context, enterpriseID uuid.UUID) (*domain.InvoiceStats, []domain.MonthlyInvoiceStats, error) {
	return s.invoiceRepo.Stats(ctx, enterpriseID)
}
