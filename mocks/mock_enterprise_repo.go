package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/domain"
)

// MockEnterpriseRepo is a mock implementation of port.EnterpriseRepository.
type MockEnterpriseRepo struct {
	mock.Mock
}

func (m *MockEnterpriseRepo) Create(ctx context.Context, e *domain.Enterprise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnterpriseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enterprise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enterprise), args.Error(1)
}

func (m *MockEnterpriseRepo) GetByEmail(ctx context.Context, email string) (*domain.Enterprise, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enterprise), args.Error(1)
}

func (m *MockEnterpriseRepo) Update(ctx context.Context, e *domain.Enterprise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
