package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/artifact"
	"quickbill/internal/dispatch"
	"quickbill/internal/domain"
	"quickbill/internal/port"
	"quickbill/internal/service"
	"quickbill/mocks"
)

func newSendFixture(provider *mocks.MockMessageProvider) (
	*mocks.MockInvoiceRepo, *mocks.MockNotificationRepo, *mocks.MockInvoiceRenderer, service.SendService,
) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	notificationRepo := new(mocks.MockNotificationRepo)
	renderer := new(mocks.MockInvoiceRenderer)
	// No object storage configured: every stored document degrades to an
	// ephemeral inline reference.
	artifacts := artifact.NewStore(nil, nil)
	dispatcher := dispatch.NewDispatcher(provider)
	svc := service.NewSendService(invoiceRepo, notificationRepo, renderer, artifacts, dispatcher)
	return invoiceRepo, notificationRepo, renderer, svc
}

func TestSendService_SendDocument_LinkReference(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	invoiceRepo, notificationRepo, _, svc := newSendFixture(provider)

	enterpriseID := uuid.New()

	provider.On("Channel").Return(domain.ChannelTwilio)
	provider.On("Send", mock.Anything, mock.MatchedBy(func(msg port.OutboundMessage) bool {
		return msg.DocumentLink == "https://bucket.s3.amazonaws.com/invoices/invoice_INV-7.pdf" &&
			msg.DocumentData == nil &&
			msg.Recipient == "+911234567890"
	})).Return("SM123", nil)

	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.NotificationAttempt")).Return(nil)
	notificationRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.NotificationAttempt")).Return(nil)
	invoiceRepo.On("MarkWhatsappSent", mock.Anything, enterpriseID, "INV-7", mock.AnythingOfType("time.Time")).Return(nil)

	result, err := svc.SendDocument(context.Background(), enterpriseID, service.SendDocumentInput{
		PhoneNumber:   "+911234567890",
		PDFURL:        "https://bucket.s3.amazonaws.com/invoices/invoice_INV-7.pdf",
		InvoiceNumber: "INV-7",
		BillTo:        "Asha Traders",
		BusinessName:  "QuickBill Co",
		Amount:        "₹236.00",
	})

	assert.NoError(t, err)
	assert.Equal(t, "SM123", result.ProviderMessageID)
	assert.Equal(t, domain.ChannelTwilio, result.Channel)
	assert.Equal(t, domain.ReferenceDurable, result.ArtifactReference.Kind)

	provider.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
}

func TestSendService_SendDocument_MissingFields(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	invoiceRepo, notificationRepo, _, svc := newSendFixture(provider)

	cases := []service.SendDocumentInput{
		{PDFURL: "https://x/y.pdf", InvoiceNumber: "INV-1", BillTo: "A"},
		{PhoneNumber: "+91", InvoiceNumber: "INV-1", BillTo: "A"},
		{PhoneNumber: "+91", PDFURL: "https://x/y.pdf", BillTo: "A"},
		{PhoneNumber: "+91", PDFURL: "https://x/y.pdf", InvoiceNumber: "INV-1"},
	}
	for _, input := range cases {
		result, err := svc.SendDocument(context.Background(), uuid.New(), input)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	// Validation fails fast: no dispatch, no persistence.
	provider.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "MarkWhatsappSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendService_SendDocument_InlineDataForwardedAsAttachment(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	invoiceRepo, notificationRepo, _, svc := newSendFixture(provider)

	enterpriseID := uuid.New()
	inlineRef := artifact.InlineReference([]byte("%PDF-1.4 inline"))

	provider.On("Channel").Return(domain.ChannelPersonal)
	provider.On("Send", mock.Anything, mock.MatchedBy(func(msg port.OutboundMessage) bool {
		return string(msg.DocumentData) == "%PDF-1.4 inline" &&
			msg.DocumentFilename == "invoice_INV-9.pdf" &&
			msg.DocumentLink == ""
	})).Return("msg-inline", nil)

	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.NotificationAttempt")).Return(nil)
	notificationRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.NotificationAttempt")).Return(nil)
	invoiceRepo.On("MarkWhatsappSent", mock.Anything, enterpriseID, "INV-9", mock.AnythingOfType("time.Time")).Return(nil)

	result, err := svc.SendDocument(context.Background(), enterpriseID, service.SendDocumentInput{
		PhoneNumber:   "+919999999999",
		PDFURL:        inlineRef.URL,
		InvoiceNumber: "INV-9",
		BillTo:        "Ravi Kumar",
		BusinessName:  "QuickBill Co",
		Amount:        "₹118.00",
	})

	assert.NoError(t, err)
	assert.Equal(t, "msg-inline", result.ProviderMessageID)
	assert.Equal(t, domain.ReferenceEphemeral, result.ArtifactReference.Kind)
	provider.AssertExpectations(t)
}

func TestSendService_SendDocument_DispatchFailureLeavesStatusUntouched(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	invoiceRepo, notificationRepo, _, svc := newSendFixture(provider)

	provider.On("Channel").Return(domain.ChannelTwilio)
	provider.On("Send", mock.Anything, mock.Anything).
		Return("", errors.New("provider unreachable"))

	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.NotificationAttempt")).Return(nil)
	notificationRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.NotificationAttempt) bool {
		return a.Status == domain.NotificationStatusFailed && a.ErrorDetail != ""
	})).Return(nil)

	result, err := svc.SendDocument(context.Background(), uuid.New(), service.SendDocumentInput{
		PhoneNumber:   "+911234567890",
		PDFURL:        "https://bucket/invoices/invoice_INV-2.pdf",
		InvoiceNumber: "INV-2",
		BillTo:        "Asha Traders",
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	invoiceRepo.AssertNotCalled(t, "MarkWhatsappSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notificationRepo.AssertExpectations(t)
}

func TestSendService_SendDocument_RecordingFailureStillSucceeds(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	invoiceRepo, notificationRepo, _, svc := newSendFixture(provider)

	enterpriseID := uuid.New()

	provider.On("Channel").Return(domain.ChannelTwilio)
	provider.On("Send", mock.Anything, mock.Anything).Return("SM999", nil)

	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.NotificationAttempt")).Return(nil)
	notificationRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.NotificationAttempt")).
		Return(errors.New("db write failed"))
	invoiceRepo.On("MarkWhatsappSent", mock.Anything, enterpriseID, "INV-3", mock.AnythingOfType("time.Time")).
		Return(errors.New("db write failed"))

	result, err := svc.SendDocument(context.Background(), enterpriseID, service.SendDocumentInput{
		PhoneNumber:   "+911234567890",
		PDFURL:        "https://bucket/invoices/invoice_INV-3.pdf",
		InvoiceNumber: "INV-3",
		BillTo:        "Asha Traders",
	})

	// Bookkeeping failed, but the message went out.
	assert.NoError(t, err)
	assert.Equal(t, "SM999", result.ProviderMessageID)
	invoiceRepo.AssertExpectations(t)
}

func TestSendService_SendInvoice_RenderFailureHasNoSideEffects(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	invoiceRepo, notificationRepo, renderer, svc := newSendFixture(provider)

	enterpriseID := uuid.New()
	invoiceID := uuid.New()
	invoice := &domain.Invoice{
		ID:            invoiceID,
		EnterpriseID:  enterpriseID,
		InvoiceNumber: "INV-4",
		BillTo:        domain.Party{Name: "Asha Traders", Phone: "+911234567890"},
	}

	invoiceRepo.On("GetByID", mock.Anything, enterpriseID, invoiceID).Return(invoice, nil)
	renderer.On("Render", mock.Anything, invoice).Return(nil, "", errors.New("layout overflow"))

	result, err := svc.SendInvoice(context.Background(), enterpriseID, invoiceID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendService_SendInvoice_Success_EphemeralFallback(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	invoiceRepo, notificationRepo, renderer, svc := newSendFixture(provider)

	enterpriseID := uuid.New()
	invoiceID := uuid.New()
	invoice := &domain.Invoice{
		ID:            invoiceID,
		EnterpriseID:  enterpriseID,
		InvoiceNumber: "INV-5",
		BillFrom:      domain.Party{Name: "QuickBill Co"},
		BillTo:        domain.Party{Name: "Asha Traders", Phone: "+911234567890"},
		Total:         decimal.RequireFromString("236.00"),
		Currency:      "₹",
	}
	pdf := []byte("%PDF-1.4 rendered")

	invoiceRepo.On("GetByID", mock.Anything, enterpriseID, invoiceID).Return(invoice, nil)
	renderer.On("Render", mock.Anything, invoice).Return(pdf, "invoice_INV-5", nil)

	provider.On("Channel").Return(domain.ChannelPersonal)
	// Storage is unconfigured, so the dispatcher must receive the rendered
	// bytes as an inline attachment rather than a link.
	provider.On("Send", mock.Anything, mock.MatchedBy(func(msg port.OutboundMessage) bool {
		return string(msg.DocumentData) == "%PDF-1.4 rendered" &&
			msg.DocumentFilename == "invoice_INV-5.pdf"
	})).Return("msg-5", nil)

	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.NotificationAttempt")).Return(nil)
	notificationRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.NotificationAttempt) bool {
		return a.Status == domain.NotificationStatusSent && a.ProviderMessageID == "msg-5"
	})).Return(nil)
	invoiceRepo.On("MarkWhatsappSent", mock.Anything, enterpriseID, "INV-5", mock.AnythingOfType("time.Time")).Return(nil)

	result, err := svc.SendInvoice(context.Background(), enterpriseID, invoiceID)

	assert.NoError(t, err)
	assert.Equal(t, "msg-5", result.ProviderMessageID)
	assert.Equal(t, domain.ReferenceEphemeral, result.ArtifactReference.Kind)

	invoiceRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestSendService_SendInvoice_NoPhoneNumber(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	invoiceRepo, _, renderer, svc := newSendFixture(provider)

	enterpriseID := uuid.New()
	invoiceID := uuid.New()
	invoice := &domain.Invoice{
		ID:            invoiceID,
		EnterpriseID:  enterpriseID,
		InvoiceNumber: "INV-6",
		BillTo:        domain.Party{Name: "No Phone"},
	}

	invoiceRepo.On("GetByID", mock.Anything, enterpriseID, invoiceID).Return(invoice, nil)

	result, err := svc.SendInvoice(context.Background(), enterpriseID, invoiceID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}
