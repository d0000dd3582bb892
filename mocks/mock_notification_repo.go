package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quickbill/internal/domain"
)

// MockNotificationRepo is a mock implementation of port.NotificationRepository.
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, a *domain.NotificationAttempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockNotificationRepo) Update(ctx context.Context, a *domain.NotificationAttempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
