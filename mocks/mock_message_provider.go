package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quickbill/internal/domain"
	"quickbill/internal/port"
)

// MockMessageProvider is a mock implementation of port.MessageProvider.
type MockMessageProvider struct {
	mock.Mock
}

func (m *MockMessageProvider) Channel() domain.Channel {
	args := m.Called()
	return args.Get(0).(domain.Channel)
}

func (m *MockMessageProvider) Send(ctx context.Context, msg port.OutboundMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}
