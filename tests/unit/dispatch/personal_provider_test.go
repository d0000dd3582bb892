package dispatch_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"quickbill/internal/config"
	"quickbill/internal/domain"
	"quickbill/internal/port"
	"quickbill/internal/whatsapp/personal"
)

func personalConfig() *config.PersonalAPIConfig {
	return &config.PersonalAPIConfig{
		APIKey: "test-key",
		Sender: "+910000000000",
	}
}

func TestPersonalProvider_Send_InlineDocumentPayload(t *testing.T) {
	var captured map[string]interface{}
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(map[string]string{"messageId": "pm-1"})
	}))
	defer server.Close()

	p := personal.NewProviderWithEndpoint(personalConfig(), server.URL)
	pdf := []byte("%PDF-1.4 test")

	messageID, err := p.Send(context.Background(), port.OutboundMessage{
		Recipient:        "+911234567890",
		Body:             "Dear Asha Traders, your invoice.",
		DocumentData:     pdf,
		DocumentFilename: "invoice_INV-1.pdf",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pm-1", messageID)
	assert.Equal(t, "Bearer test-key", authHeader)

	assert.Equal(t, "test-key", captured["apiKey"])
	assert.Equal(t, "+910000000000", captured["sender"])
	assert.Equal(t, "+911234567890", captured["recipient"])

	doc := captured["document"].(map[string]interface{})
	assert.Equal(t, base64.StdEncoding.EncodeToString(pdf), doc["data"])
	assert.Equal(t, "invoice_INV-1.pdf", doc["filename"])
	assert.Nil(t, doc["link"])
}

func TestPersonalProvider_Send_LinkDocumentPayload(t *testing.T) {
	var captured map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		// Some deployments answer with "id" instead of "messageId".
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "pm-2"})
	}))
	defer server.Close()

	p := personal.NewProviderWithEndpoint(personalConfig(), server.URL)

	messageID, err := p.Send(context.Background(), port.OutboundMessage{
		Recipient:    "+911234567890",
		Body:         "hello",
		DocumentLink: "https://bucket/invoices/invoice_INV-2.pdf",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pm-2", messageID)

	doc := captured["document"].(map[string]interface{})
	assert.Equal(t, "https://bucket/invoices/invoice_INV-2.pdf", doc["link"])
	assert.Nil(t, doc["data"])
}

func TestPersonalProvider_Send_ServerErrorIsDispatchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	p := personal.NewProviderWithEndpoint(personalConfig(), server.URL)

	messageID, err := p.Send(context.Background(), port.OutboundMessage{
		Recipient: "+911234567890",
		Body:      "hello",
	})

	assert.Empty(t, messageID)
	assert.ErrorIs(t, err, domain.ErrDispatchFailed)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestPersonalProvider_Send_Unconfigured(t *testing.T) {
	p := personal.NewProvider(&config.PersonalAPIConfig{})

	messageID, err := p.Send(context.Background(), port.OutboundMessage{
		Recipient: "+911234567890",
		Body:      "hello",
	})

	assert.Empty(t, messageID)
	assert.ErrorIs(t, err, domain.ErrDispatchFailed)
	assert.Contains(t, err.Error(), "not configured")
}
