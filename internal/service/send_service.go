package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"quickbill/internal/artifact"
	"quickbill/internal/billing"
	"quickbill/internal/dispatch"
	"quickbill/internal/domain"
	"quickbill/internal/port"
)

// flowState labels the steps of the linear send flow: rendering -> storing ->
// dispatching -> recording -> done, with error terminal from any step.
type flowState string

const (
	stateRendering   flowState = "rendering"
	stateStoring     flowState = "storing"
	stateDispatching flowState = "dispatching"
	stateRecording   flowState = "recording"
	stateDone        flowState = "done"
)

// logStep traces flow progress per invoice so a stalled or failed send can be
// located from the logs alone.
func logStep(invoiceNumber string, s flowState) {
	log.Printf("sendService: invoice %s: %s", invoiceNumber, s)
}

// SendDocumentInput is the DTO for sending an already-rendered invoice
// document. Exactly one of PDFURL or PDFBytes carries the document; PDFURL
// may be a durable URL or an inline data URI.
type SendDocumentInput struct {
	PhoneNumber     string `json:"phoneNumber"`
	PDFURL          string `json:"pdfUrl"`
	PDFBytes        []byte `json:"pdfBytes"`
	InvoiceNumber   string `json:"invoiceNumber"`
	BillTo          string `json:"billTo"`
	BusinessName    string `json:"businessName"`
	Amount          string `json:"amount"`
	EnterpriseEmail string `json:"enterpriseEmail"`
}

// Validate checks the required fields. The document reference may be either a
// URL or raw bytes.
func (in *SendDocumentInput) Validate() error {
	if in.PhoneNumber == "" || in.InvoiceNumber == "" || in.BillTo == "" ||
		(in.PDFURL == "" && len(in.PDFBytes) == 0) {
		return fmt.Errorf("%w: missing required fields", domain.ErrInvalidInput)
	}
	return nil
}

// SendResult reports a completed send flow.
type SendResult struct {
	ProviderMessageID string             `json:"messageSid"`
	Channel           domain.Channel     `json:"provider"`
	ArtifactReference artifact.Reference `json:"artifact_reference"`
}

// SendService orchestrates the invoice send flow: render, store, dispatch,
// record. Side effects are externally visible at each step; there are no
// compensating transactions and no automatic retries.
type SendService interface {
	// SendDocument dispatches a client-rendered document for an invoice.
	SendDocument(ctx context.Context, enterpriseID uuid.UUID, input SendDocumentInput) (*SendResult, error)
	// SendInvoice runs the full flow for a stored invoice, rendering the
	// document server-side.
	SendInvoice(ctx context.Context, enterpriseID, invoiceID uuid.UUID) (*SendResult, error)
}

type sendService struct {
	invoiceRepo      port.InvoiceRepository
	notificationRepo port.NotificationRepository
	renderer         port.InvoiceRenderer
	artifacts        *artifact.Store
	dispatcher       *dispatch.Dispatcher
}

// NewSendService creates a new SendService implementation.
func NewSendService(
	invoiceRepo port.InvoiceRepository,
	notificationRepo port.NotificationRepository,
	renderer port.InvoiceRenderer,
	artifacts *artifact.Store,
	dispatcher *dispatch.Dispatcher,
) SendService {
	return &sendService{
		invoiceRepo:      invoiceRepo,
		notificationRepo: notificationRepo,
		renderer:         renderer,
		artifacts:        artifacts,
		dispatcher:       dispatcher,
	}
}

func (s *sendService) SendDocument(ctx context.Context, enterpriseID uuid.UUID, input SendDocumentInput) (*SendResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Raw bytes are stored first; a supplied URL (durable or data URI) is
	// already a reference and passes through untouched.
	var ref artifact.Reference
	if len(input.PDFBytes) > 0 {
		logStep(input.InvoiceNumber, stateStoring)
		ref = s.artifacts.Store(ctx, input.PDFBytes, "invoice_"+input.InvoiceNumber)
	} else {
		ref = artifact.ParseReference(input.PDFURL)
	}

	summary := dispatch.InvoiceSummary{
		InvoiceNumber: input.InvoiceNumber,
		BillToName:    input.BillTo,
		BusinessName:  input.BusinessName,
		Amount:        input.Amount,
	}

	return s.dispatchAndRecord(ctx, enterpriseID, input.InvoiceNumber, input.PhoneNumber, summary, ref)
}

func (s *sendService) SendInvoice(ctx context.Context, enterpriseID, invoiceID uuid.UUID) (*SendResult, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, enterpriseID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.BillTo.Phone == "" {
		return nil, fmt.Errorf("%w: invoice %s has no bill-to phone number", domain.ErrInvalidInput, invoice.InvoiceNumber)
	}

	logStep(invoice.InvoiceNumber, stateRendering)
	pdf, suggestedName, err := s.renderer.Render(ctx, invoice)
	if err != nil {
		// Nothing persisted yet; the flow terminates with no side effects.
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	logStep(invoice.InvoiceNumber, stateStoring)
	ref := s.artifacts.Store(ctx, pdf, suggestedName)

	summary := dispatch.InvoiceSummary{
		InvoiceNumber: invoice.InvoiceNumber,
		BillToName:    invoice.BillTo.Name,
		BusinessName:  invoice.BillFrom.Name,
		Amount:        invoice.Currency + billing.FormatAmount(invoice.Total),
	}

	return s.dispatchAndRecord(ctx, enterpriseID, invoice.InvoiceNumber, invoice.BillTo.Phone, summary, ref)
}

// dispatchAndRecord runs the dispatching and recording steps shared by both
// entry points. A notification attempt row is written per attempt. Dispatch
// failure terminates the flow, but the artifact reference stays valid so the
// caller can retry dispatch without re-rendering. Recording failures are
// logged and swallowed: the notification is already delivered and cannot be
// rolled back, so the caller still sees success.
func (s *sendService) dispatchAndRecord(
	ctx context.Context,
	enterpriseID uuid.UUID,
	invoiceNumber, phone string,
	summary dispatch.InvoiceSummary,
	ref artifact.Reference,
) (*SendResult, error) {
	logStep(invoiceNumber, stateDispatching)

	attempt := &domain.NotificationAttempt{
		EnterpriseID:  enterpriseID,
		InvoiceNumber: invoiceNumber,
		Channel:       s.dispatcher.Channel(),
		ArtifactURL:   attemptURL(ref),
		ArtifactKind:  ref.Kind,
		Status:        domain.NotificationStatusPending,
	}
	if err := s.notificationRepo.Create(ctx, attempt); err != nil {
		log.Printf("sendService: recording pending attempt for invoice %s failed: %v", invoiceNumber, err)
	}

	receipt, err := s.dispatcher.Send(ctx, summary, ref, phone)
	if err != nil {
		attempt.Status = domain.NotificationStatusFailed
		attempt.ErrorDetail = err.Error()
		if uerr := s.notificationRepo.Update(ctx, attempt); uerr != nil {
			log.Printf("sendService: recording failed attempt for invoice %s failed: %v", invoiceNumber, uerr)
		}
		// No invoice status mutation on dispatch failure.
		return nil, err
	}

	logStep(invoiceNumber, stateRecording)
	now := time.Now().UTC()
	attempt.Status = domain.NotificationStatusSent
	attempt.ProviderMessageID = receipt.ProviderMessageID
	attempt.SentAt = &now
	if err := s.notificationRepo.Update(ctx, attempt); err != nil {
		log.Printf("sendService: %v: updating attempt for invoice %s: %v", domain.ErrRecordingFailed, invoiceNumber, err)
	}
	if err := s.invoiceRepo.MarkWhatsappSent(ctx, enterpriseID, invoiceNumber, now); err != nil {
		// Degraded but acceptable: the message is out, only bookkeeping failed.
		log.Printf("sendService: %v: marking invoice %s sent: %v", domain.ErrRecordingFailed, invoiceNumber, err)
	}

	logStep(invoiceNumber, stateDone)
	log.Printf("sendService: invoice %s dispatched via %s (ref=%s)",
		invoiceNumber, receipt.Channel, ref.Kind)

	return &SendResult{
		ProviderMessageID: receipt.ProviderMessageID,
		Channel:           receipt.Channel,
		ArtifactReference: ref,
	}, nil
}

// attemptURL avoids persisting megabytes of base64 for inline references.
func attemptURL(ref artifact.Reference) string {
	if ref.Inline() {
		return "inline:application/pdf"
	}
	return ref.URL
}
