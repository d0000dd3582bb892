package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/domain"
)

// MockCustomerRepo is a mock implementation of port.CustomerRepository.
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, enterpriseID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) GetByPhone(ctx context.Context, enterpriseID uuid.UUID, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, enterpriseID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) List(ctx context.Context, enterpriseID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error) {
	args := m.Called(ctx, enterpriseID, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Customer), args.Int(1), args.Error(2)
}

func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepo) AddInvoiceStats(ctx context.Context, enterpriseID, id uuid.UUID, amount decimal.Decimal, at time.Time) error {
	args := m.Called(ctx, enterpriseID, id, amount, at)
	return args.Error(0)
}

func (m *MockCustomerRepo) Stats(ctx context.Context, enterpriseID uuid.UUID) (*domain.CustomerStats, []domain.Customer, []domain.Customer, error) {
	args := m.Called(ctx, enterpriseID)
	var stats *domain.CustomerStats
	if args.Get(0) != nil {
		stats = args.Get(0).(*domain.CustomerStats)
	}
	var top, recent []domain.Customer
	if args.Get(1) != nil {
		top = args.Get(1).([]domain.Customer)
	}
	if args.Get(2) != nil {
		recent = args.Get(2).([]domain.Customer)
	}
	return stats, top, recent, args.Error(3)
}
