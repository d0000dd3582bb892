package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/domain"
	"quickbill/internal/service"
)

// MockCustomerService is a mock implementation of service.CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) List(ctx context.Context, enterpriseID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error) {
	args := m.Called(ctx, enterpriseID, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Customer), args.Int(1), args.Error(2)
}

func (m *MockCustomerService) GetDetail(ctx context.Context, enterpriseID, id uuid.UUID) (*service.CustomerDetail, error) {
	args := m.Called(ctx, enterpriseID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CustomerDetail), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, enterpriseID, id uuid.UUID, input service.UpdateCustomerInput) (*domain.Customer, error) {
	args := m.Called(ctx, enterpriseID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) UpdateStatus(ctx context.Context, enterpriseID, id uuid.UUID, status domain.CustomerStatus) (*domain.Customer, error) {
	args := m.Called(ctx, enterpriseID, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) Stats(ctx context.Context, enterpriseID uuid.UUID) (*service.CustomerStatsResult, error) {
	args := m.Called(ctx, enterpriseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CustomerStatsResult), args.Error(1)
}
