// Package noop provides a message provider that only logs, for deployments
// with no WhatsApp channel configured.
package noop

import (
	"context"
	"fmt"
	"log"

	"quickbill/internal/domain"
	"quickbill/internal/port"
)

// Provider logs outbound messages and reports dispatch as unconfigured.
type Provider struct{}

// NewProvider creates a no-op message provider.
func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Channel() domain.Channel { return domain.ChannelNone }

func (p *Provider) Send(_ context.Context, msg port.OutboundMessage) (string, error) {
	log.Printf("[NOOP WHATSAPP] to %s: %q (document link=%q, inline=%d bytes)",
		msg.Recipient, msg.Body, msg.DocumentLink, len(msg.DocumentData))
	return "", fmt.Errorf("%w: no WhatsApp provider configured; configure Twilio or the personal WhatsApp API",
		domain.ErrDispatchFailed)
}
