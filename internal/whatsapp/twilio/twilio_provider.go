// Package twilio implements the managed WhatsApp channel via the Twilio
// Messages API.
package twilio

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"quickbill/internal/config"
	"quickbill/internal/domain"
	"quickbill/internal/port"
)

// Provider implements port.MessageProvider using twilio-go.
type Provider struct {
	client *twilio.RestClient
	from   string
}

// NewProvider creates a Twilio-backed message provider. Returns an error when
// credentials are absent or malformed so the caller can fall back explicitly.
func NewProvider(cfg *config.TwilioConfig) (*Provider, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("twilio credentials not configured")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &Provider{client: client, from: cfg.From}, nil
}

func (p *Provider) Channel() domain.Channel { return domain.ChannelTwilio }

// Send delivers one WhatsApp message. Twilio fetches media by URL, so inline
// document data cannot be attached; those messages go out as text only. The
// Twilio client manages its own request timeout.
func (p *Provider) Send(_ context.Context, msg port.OutboundMessage) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + p.from)
	params.SetTo("whatsapp:" + msg.Recipient)
	params.SetBody(msg.Body)
	if msg.DocumentLink != "" {
		params.SetMediaUrl([]string{msg.DocumentLink})
	}

	resp, err := p.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("%w: twilio send: %v", domain.ErrDispatchFailed, err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	return sid, nil
}
