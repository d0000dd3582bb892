// Package personal implements the generic self-hosted WhatsApp HTTP API
// channel. The API accepts a JSON payload with an inline base64 document or a
// document link, authenticated with a bearer key.
package personal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quickbill/internal/config"
	"quickbill/internal/domain"
	"quickbill/internal/port"
)

const defaultTimeout = 30 * time.Second

// Provider implements port.MessageProvider against a personal WhatsApp API.
type Provider struct {
	apiKey   string
	sender   string
	endpoint string
	client   *http.Client
}

// NewProvider creates a personal-API message provider from configuration.
func NewProvider(cfg *config.PersonalAPIConfig) *Provider {
	return newProvider(cfg, cfg.APIEndpoint)
}

// NewProviderWithEndpoint creates a provider pointing at a custom endpoint
// (for testing).
func NewProviderWithEndpoint(cfg *config.PersonalAPIConfig, endpoint string) *Provider {
	return newProvider(cfg, endpoint)
}

func newProvider(cfg *config.PersonalAPIConfig, endpoint string) *Provider {
	return &Provider{
		apiKey:   cfg.APIKey,
		sender:   cfg.Sender,
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

func (p *Provider) Channel() domain.Channel { return domain.ChannelPersonal }

type documentPayload struct {
	Data     string `json:"data,omitempty"`
	Filename string `json:"filename,omitempty"`
	Link     string `json:"link,omitempty"`
}

type sendRequest struct {
	APIKey    string           `json:"apiKey"`
	Sender    string           `json:"sender"`
	Recipient string           `json:"recipient"`
	Message   string           `json:"message"`
	Document  *documentPayload `json:"document,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
	ID        string `json:"id"`
}

// Send delivers one message. Inline document bytes are forwarded base64
// encoded as an attachment; otherwise the document link is passed through.
func (p *Provider) Send(ctx context.Context, msg port.OutboundMessage) (string, error) {
	if p.endpoint == "" || p.apiKey == "" || p.sender == "" {
		return "", fmt.Errorf("%w: personal WhatsApp API not configured", domain.ErrDispatchFailed)
	}

	reqBody := sendRequest{
		APIKey:    p.apiKey,
		Sender:    p.sender,
		Recipient: msg.Recipient,
		Message:   msg.Body,
	}
	switch {
	case len(msg.DocumentData) > 0:
		reqBody.Document = &documentPayload{
			Data:     base64.StdEncoding.EncodeToString(msg.DocumentData),
			Filename: msg.DocumentFilename,
		}
	case msg.DocumentLink != "":
		reqBody.Document = &documentPayload{Link: msg.DocumentLink}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: calling personal WhatsApp API: %v", domain.ErrDispatchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: personal WhatsApp API error (status %d): %s",
			domain.ErrDispatchFailed, resp.StatusCode, string(respBody))
	}

	var parsed sendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding personal WhatsApp API response: %v", domain.ErrDispatchFailed, err)
	}

	messageID := parsed.MessageID
	if messageID == "" {
		messageID = parsed.ID
	}
	return messageID, nil
}
