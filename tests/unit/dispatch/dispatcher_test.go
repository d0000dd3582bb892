package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/artifact"
	"quickbill/internal/dispatch"
	"quickbill/internal/domain"
	"quickbill/internal/port"
	"quickbill/mocks"
)

func summary() dispatch.InvoiceSummary {
	return dispatch.InvoiceSummary{
		InvoiceNumber: "INV-42",
		BillToName:    "Asha Traders",
		BusinessName:  "QuickBill Co",
		Amount:        "₹236.00",
	}
}

func TestFormatMessage(t *testing.T) {
	got := dispatch.FormatMessage(summary())
	want := "Dear Asha Traders,\n\nThank you for your business! Here is your invoice #INV-42 for ₹236.00.\n\nBest regards,\nQuickBill Co"
	assert.Equal(t, want, got)
}

func TestDispatcher_Send_InlineReferenceBecomesAttachment(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	d := dispatch.NewDispatcher(provider)

	pdf := []byte("%PDF-1.4 content")
	ref := artifact.InlineReference(pdf)

	provider.On("Channel").Return(domain.ChannelPersonal)
	provider.On("Send", mock.Anything, mock.MatchedBy(func(msg port.OutboundMessage) bool {
		return string(msg.DocumentData) == "%PDF-1.4 content" &&
			msg.DocumentFilename == "invoice_INV-42.pdf" &&
			msg.DocumentLink == ""
	})).Return("msg-1", nil)

	receipt, err := d.Send(context.Background(), summary(), ref, "+911234567890")

	assert.NoError(t, err)
	assert.Equal(t, "msg-1", receipt.ProviderMessageID)
	assert.Equal(t, domain.ChannelPersonal, receipt.Channel)
	provider.AssertExpectations(t)
}

func TestDispatcher_Send_URLReferenceBecomesLink(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	d := dispatch.NewDispatcher(provider)

	ref := artifact.ParseReference("https://bucket.s3.amazonaws.com/invoices/invoice_INV-42.pdf")

	provider.On("Channel").Return(domain.ChannelTwilio)
	provider.On("Send", mock.Anything, mock.MatchedBy(func(msg port.OutboundMessage) bool {
		return msg.DocumentLink == "https://bucket.s3.amazonaws.com/invoices/invoice_INV-42.pdf" &&
			msg.DocumentData == nil
	})).Return("SM1", nil)

	receipt, err := d.Send(context.Background(), summary(), ref, "+911234567890")

	assert.NoError(t, err)
	assert.Equal(t, "SM1", receipt.ProviderMessageID)
	provider.AssertExpectations(t)
}

func TestDispatcher_Send_ProviderErrorIsSurfaced(t *testing.T) {
	provider := new(mocks.MockMessageProvider)
	d := dispatch.NewDispatcher(provider)

	provider.On("Send", mock.Anything, mock.Anything).
		Return("", errors.New("auth rejected"))

	receipt, err := d.Send(context.Background(), summary(),
		artifact.ParseReference("https://bucket/x.pdf"), "+911234567890")

	assert.Nil(t, receipt)
	assert.EqualError(t, err, "auth rejected")
}
