// Package dispatch formats customer-facing WhatsApp messages and hands them
// to the configured message provider.
package dispatch

import (
	"context"
	"fmt"
	"log"

	"quickbill/internal/artifact"
	"quickbill/internal/domain"
	"quickbill/internal/port"
)

// InvoiceSummary carries the display fields interpolated into the message.
// Amount is the formatted grand total, currency symbol included.
type InvoiceSummary struct {
	InvoiceNumber string
	BillToName    string
	BusinessName  string
	Amount        string
}

// SendReceipt is returned after a provider accepts the message.
type SendReceipt struct {
	ProviderMessageID string
	Channel           domain.Channel
}

// Dispatcher sends invoice notifications through a single provider chosen at
// startup. It never retries and never queues; the caller decides whether a
// failure is surfaced to the end user.
type Dispatcher struct {
	provider port.MessageProvider
}

// NewDispatcher creates a dispatcher bound to one message provider.
func NewDispatcher(provider port.MessageProvider) *Dispatcher {
	return &Dispatcher{provider: provider}
}

// Channel reports which channel the dispatcher sends through.
func (d *Dispatcher) Channel() domain.Channel {
	return d.provider.Channel()
}

// FormatMessage builds the fixed human-readable notification text.
func FormatMessage(s InvoiceSummary) string {
	return fmt.Sprintf(
		"Dear %s,\n\nThank you for your business! Here is your invoice #%s for %s.\n\nBest regards,\n%s",
		s.BillToName, s.InvoiceNumber, s.Amount, s.BusinessName,
	)
}

// Send formats and dispatches one invoice notification. Inline (ephemeral
// data) references are decoded and forwarded as a document attachment;
// durable references are forwarded as a link. Providers that cannot accept
// inline payloads degrade per their own contract.
func (d *Dispatcher) Send(ctx context.Context, summary InvoiceSummary, ref artifact.Reference, recipientPhone string) (*SendReceipt, error) {
	msg := port.OutboundMessage{
		Recipient: recipientPhone,
		Body:      FormatMessage(summary),
	}

	if ref.Inline() {
		data, err := ref.Data()
		if err != nil {
			return nil, fmt.Errorf("%w: decoding inline document: %v", domain.ErrDispatchFailed, err)
		}
		msg.DocumentData = data
		msg.DocumentFilename = fmt.Sprintf("invoice_%s.pdf", summary.InvoiceNumber)
	} else if ref.URL != "" {
		msg.DocumentLink = ref.URL
	}

	messageID, err := d.provider.Send(ctx, msg)
	if err != nil {
		return nil, err
	}

	log.Printf("dispatch: message sent via %s provider: %s", d.provider.Channel(), messageID)
	return &SendReceipt{
		ProviderMessageID: messageID,
		Channel:           d.provider.Channel(),
	}, nil
}
