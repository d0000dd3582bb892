package port

import (
	"context"

	"quickbill/internal/domain"
)

// OutboundMessage is a fully formatted message ready for a provider. Exactly
// one of DocumentLink or DocumentData is set when a document accompanies the
// message; DocumentData carries raw PDF bytes for providers that accept
// inline attachments.
type OutboundMessage struct {
	Recipient        string
	Body             string
	DocumentLink     string
	DocumentData     []byte
	DocumentFilename string
}

// MessageProvider sends a single WhatsApp message through one channel.
// Implementations never retry and never queue; any failure is returned to the
// caller with human-readable detail.
type MessageProvider interface {
	Channel() domain.Channel
	Send(ctx context.Context, msg OutboundMessage) (messageID string, err error)
}
