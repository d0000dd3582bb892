package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/domain"
	"quickbill/internal/port"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, enterpriseID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, enterpriseID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, enterpriseID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) ListByIDs(ctx context.Context, enterpriseID uuid.UUID, ids []uuid.UUID) ([]domain.Invoice, error) {
	args := m.Called(ctx, enterpriseID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) UpdateStatus(ctx context.Context, enterpriseID, id uuid.UUID, status domain.InvoiceStatus) error {
	args := m.Called(ctx, enterpriseID, id, status)
	return args.Error(0)
}

func (m *MockInvoiceRepo) MarkWhatsappSent(ctx context.Context, enterpriseID uuid.UUID, invoiceNumber string, sentAt time.Time) error {
	args := m.Called(ctx, enterpriseID, invoiceNumber, sentAt)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Stats(ctx context.Context, enterpriseID uuid.UUID) (*domain.InvoiceStats, []domain.MonthlyInvoiceStats, error) {
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
