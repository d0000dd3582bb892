package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/service"
)

// MockSendService is a mock implementation of service.SendService.
type MockSendService struct {
	mock.Mock
}

func (m *MockSendService) SendDocument(ctx context.Context, enterpriseID uuid.UUID, input service.SendDocumentInput) (*service.SendResult, error) {
	args := m.Called(ctx, enterpriseID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SendResult), args.Error(1)
}

func (m *MockSendService) SendInvoice(ctx context.Context, enterpriseID, invoiceID uuid.UUID) (*service.SendResult, error) {
	args := m.Called(ctx, enterpriseID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SendResult), args.Error(1)
}
