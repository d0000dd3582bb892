package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quickbill/internal/domain"
)

// MockInvoiceRenderer is a mock implementation of port.InvoiceRenderer.
type MockInvoiceRenderer struct {
	mock.Mock
}

func (m *MockInvoiceRenderer) Render(ctx context.Context, inv *domain.Invoice) ([]byte, string, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
