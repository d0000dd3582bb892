package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"quickbill/internal/domain"
	"quickbill/internal/port"
)

// UpdateCustomerInput is the DTO for customer updates. Empty fields are left
// unchanged, matching the original endpoint semantics.
type UpdateCustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CustomerDetail bundles a customer with its invoice history.
type CustomerDetail struct {
	Customer *domain.Customer `json:"customer"`
	Invoices []domain.Invoice `json:"invoices"`
}

// CustomerStatsResult bundles the aggregate summary with the highest-billed
// and most recently added customers.
type CustomerStatsResult struct {
	Summary         *domain.CustomerStats `json:"summary"`
	TopCustomers    []domain.Customer     `json:"top_customers"`
	RecentCustomers []domain.Customer     `json:"recent_customers"`
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	List(ctx context.Context, enterpriseID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error)
	GetDetail(ctx context.Context, enterpriseID, id uuid.UUID) (*CustomerDetail, error)
	Update(ctx context.Context, enterpriseID, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	UpdateStatus(ctx context.Context, enterpriseID, id uuid.UUID, status domain.CustomerStatus) (*domain.Customer, error)
	Stats(ctx context.Context, enterpriseID uuid.UUID) (*CustomerStatsResult, error)
}

type customerService struct {
	customerRepo port.CustomerRepository
	invoiceRepo  port.InvoiceRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(customerRepo port.CustomerRepository, invoiceRepo port.InvoiceRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, invoiceRepo: invoiceRepo}
}

func (s *customerService) List(ctx context.Context, enterpriseID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error) {
	return s.customerRepo.List(ctx, enterpriseID, search, offset, limit)
}

func (s *customerService) GetDetail(ctx context.Context, enterpriseID, id uuid.UUID) (*CustomerDetail, error) {
	customer, err := s.customerRepo.GetByID(ctx, enterpriseID, id)
	if err != nil {
		return nil, err
	}

	invoices, _, err := s.invoiceRepo.List(ctx, enterpriseID, port.InvoiceFilter{}, 0, 100)
	if err != nil {
		return nil, fmt.Errorf("customerService.GetDetail: %w", err)
	}

	history := make([]domain.Invoice, 0)
	for _, inv := range invoices {
		if inv.BillTo.Phone == customer.Phone {
			history = append(history, inv)
		}
	}

	return &CustomerDetail{Customer: customer, Invoices: history}, nil
}

func (s *customerService) Update(ctx context.Context, enterpriseID, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, enterpriseID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	if input.Email != "" {
		customer.Email = input.Email
	}
	if input.Phone != "" {
		customer.Phone = input.Phone
	}
	if input.Address != "" {
		customer.Address = input.Address
	}
	if input.Notes != "" {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("customerService.Update: %w", err)
	}
	return customer, nil
}

func (s *customerService) UpdateStatus(ctx context.Context, enterpriseID, id uuid.UUID, status domain.CustomerStatus) (*domain.Customer, error) {
	if status != domain.CustomerStatusActive && status != domain.CustomerStatusInactive {
		return nil, fmt.Errorf("%w: invalid customer status %q", domain.ErrInvalidInput, status)
	}

	customer, err := s.customerRepo.GetByID(ctx, enterpriseID, id)
	if err != nil {
		return nil, err
	}

	customer.Status = status
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("customerService.UpdateStatus: %w", err)
	}
	return customer, nil
}

func (s *customerService) Stats(ctx context.Context, enterpriseID uuid.UUID) (*CustomerStatsResult, error) {
	summary, top, recent, err := s.customerRepo.Stats(ctx, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("customerService.Stats: %w", err)
	}
	summary.AverageAmount = summary.AverageAmount.Round(2)

	return &CustomerStatsResult{
		Summary:         summary,
		TopCustomers:    top,
		RecentCustomers: recent,
	}, nil
}
