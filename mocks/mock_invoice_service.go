package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/domain"
	"quickbill/internal/port"
	"quickbill/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Create(ctx context.Context, enterpriseID uuid.UUID, input service.CreateInvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, enterpriseID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, enterpriseID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, enterpriseID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, enterpriseID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) ListByIDs(ctx context.Context, enterpriseID uuid.UUID, ids []uuid.UUID) ([]domain.Invoice, error) {
	args := m.Called(ctx, enterpriseID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) UpdateStatus(ctx context.Context, enterpriseID, id uuid.UUID, status domain.InvoiceStatus) error {
	args := m.Called(ctx, enterpriseID, id, status)
	return args.Error(0)
}

func (m *MockInvoiceService) MarkWhatsappSent(ctx context.Context, enterpriseID, id uuid.UUID) error {
	args := m.Called(ctx, enterpriseID, id)
	return args.Error(0)
}

func (m *MockInvoiceService) Stats(ctx context.Context, enterpriseID uuid.UUID) (*domain.InvoiceStats, []domain.MonthlyInvoiceStats, error) {
	args := m.Called(ctx, enterpriseID)
	var stats *domain.InvoiceStats
	if args.Get(0) != nil {
		stats = args.Get(0).(*domain.InvoiceStats)
	}
	var monthly []domain.MonthlyInvoiceStats
	if args.Get(1) != nil {
		monthly = args.Get(1).([]domain.MonthlyInvoiceStats)
	}
	return stats, monthly, args.Error(2)
}
