package dispatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"quickbill/internal/domain"
	"quickbill/internal/port"
	"quickbill/internal/whatsapp/noop"
)

func TestNoopProvider_ReportsDistinctChannel(t *testing.T) {
	p := noop.NewProvider()

	assert.Equal(t, domain.ChannelNone, p.Channel())
	assert.NotEqual(t, domain.ChannelTwilio, p.Channel())
	assert.NotEqual(t, domain.ChannelPersonal, p.Channel())
}

func TestNoopProvider_SendAlwaysFails(t *testing.T) {
	p := noop.NewProvider()

	id, err := p.Send(context.Background(), port.OutboundMessage{
		Recipient: "+911234567890",
		Body:      "hello",
	})

	assert.Empty(t, id)
	assert.ErrorIs(t, err, domain.ErrDispatchFailed)
	assert.Contains(t, err.Error(), "no WhatsApp provider configured")
}
