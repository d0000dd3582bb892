package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/domain"
	"quickbill/internal/service"
	"quickbill/mocks"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestInvoiceService_Create_RecomputesTotals(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	svc := service.NewInvoiceService(invoiceRepo, customerRepo)

	enterpriseID := uuid.New()
	customer := &domain.Customer{ID: uuid.New(), EnterpriseID: enterpriseID, Phone: "+911234567890"}

	invoiceRepo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.SubTotal.Equal(dec("200")) &&
			inv.CGSTAmount.Equal(dec("18")) &&
			inv.SGSTAmount.Equal(dec("18")) &&
			inv.Total.Equal(dec("236")) &&
			inv.Status == domain.InvoiceStatusDraft
	})).Return(nil)
	customerRepo.On("GetByPhone", mock.Anything, enterpriseID, "+911234567890").Return(customer, nil)
	customerRepo.On("AddInvoiceStats", mock.Anything, enterpriseID, customer.ID, mock.Anything, mock.Anything).Return(nil)

	invoice, err := svc.Create(context.Background(), enterpriseID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-1",
		DateOfIssue:   time.Now(),
		BillTo:        domain.Party{Name: "Asha Traders", Phone: "+911234567890"},
		Items: []service.LineItemInput{
			{Name: "Widget", Price: dec("100"), Quantity: 2},
		},
		CGSTRate: dec("9"),
		SGSTRate: dec("9"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "₹", invoice.Currency)
	invoiceRepo.AssertExpectations(t)
	customerRepo.AssertExpectations(t)
}

func TestInvoiceService_Create_NewCustomerIsCreated(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	svc := service.NewInvoiceService(invoiceRepo, customerRepo)

	enterpriseID := uuid.New()

	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)
	customerRepo.On("GetByPhone", mock.Anything, enterpriseID, "+919876543210").Return(nil, domain.ErrNotFound)
	customerRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.Name == "Ravi Kumar" && c.Phone == "+919876543210" && c.Status == domain.CustomerStatusActive
	})).Return(nil)
	customerRepo.On("AddInvoiceStats", mock.Anything, enterpriseID, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), enterpriseID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-2",
		DateOfIssue:   time.Now(),
		BillTo:        domain.Party{Name: "Ravi Kumar", Phone: "+919876543210"},
		Items:         []service.LineItemInput{{Name: "Service", Price: dec("500"), Quantity: 1}},
	})

	assert.NoError(t, err)
	customerRepo.AssertExpectations(t)
}

func TestInvoiceService_Create_CustomerUpsertFailureIsNotFatal(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	svc := service.NewInvoiceService(invoiceRepo, customerRepo)

	enterpriseID := uuid.New()

	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)
	customerRepo.On("GetByPhone", mock.Anything, enterpriseID, "+911111111111").
		Return(nil, errors.New("connection reset"))

	invoice, err := svc.Create(context.Background(), enterpriseID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-3",
		DateOfIssue:   time.Now(),
		BillTo:        domain.Party{Name: "Flaky", Phone: "+911111111111"},
		Items:         []service.LineItemInput{{Name: "Item", Price: dec("10"), Quantity: 1}},
	})

	assert.NoError(t, err)
	assert.NotNil(t, invoice)
}

func TestInvoiceService_Create_InvalidItems(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	svc := service.NewInvoiceService(invoiceRepo, customerRepo)

	_, err := svc.Create(context.Background(), uuid.New(), service.CreateInvoiceInput{
		InvoiceNumber: "INV-4",
		DateOfIssue:   time.Now(),
		BillTo:        domain.Party{Name: "Asha Traders"},
		Items:         []service.LineItemInput{{Name: "Bad", Price: dec("-5"), Quantity: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	svc := service.NewInvoiceService(invoiceRepo, customerRepo)

	err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), domain.InvoiceStatus("archived"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	invoiceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_MarkWhatsappSent(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	svc := service.NewInvoiceService(invoiceRepo, customerRepo)

	enterpriseID := uuid.New()
	invoiceID := uuid.New()
	invoice := &domain.Invoice{ID: invoiceID, EnterpriseID: enterpriseID, InvoiceNumber: "INV-5"}

	invoiceRepo.On("GetByID", mock.Anything, enterpriseID, invoiceID).Return(invoice, nil)
	invoiceRepo.On("MarkWhatsappSent", mock.Anything, enterpriseID, "INV-5", mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.MarkWhatsappSent(context.Background(), enterpriseID, invoiceID)

	assert.NoError(t, err)
	invoiceRepo.AssertExpectations(t)
}
