package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Enterprise represents a tenant account issuing invoices.
type Enterprise struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Phone        string    `db:"phone" json:"phone"`
	Address      string    `db:"address" json:"address"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Customer represents a billing recipient belonging to an enterprise.
// Stats fields are denormalized and updated on invoice creation.
type Customer struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	EnterpriseID    uuid.UUID       `db:"enterprise_id" json:"enterprise_id"`
	Name            string          `db:"name" json:"name"`
	Email           string          `db:"email" json:"email"`
	Phone           string          `db:"phone" json:"phone"`
	Address         string          `db:"address" json:"address"`
	Notes           string          `db:"notes" json:"notes"`
	Status          CustomerStatus  `db:"status" json:"status"`
	TotalInvoices   int             `db:"total_invoices" json:"total_invoices"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"total_amount"`
	LastInvoiceDate *time.Time      `db:"last_invoice_date" json:"last_invoice_date"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Party holds the billing identity on either side of an invoice.
type Party struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// LineItem is a single billable line on an invoice. Owned exclusively by the
// invoice that contains it; immutable once the invoice is finalized.
type LineItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// TaxConfiguration holds the percentage rates applied to an invoice subtotal.
// Each rate is optional; a zero value means the component is not applied.
type TaxConfiguration struct {
	CGSTRate     decimal.Decimal `json:"cgst_rate"`
	SGSTRate     decimal.Decimal `json:"sgst_rate"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

// InvoiceTotals is derived from line items and tax configuration, never
// persisted independently of its invoice. Every component is rounded to two
// decimal places before summing.
type InvoiceTotals struct {
	SubTotal       decimal.Decimal `json:"sub_total"`
	CGSTAmount     decimal.Decimal `json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `json:"sgst_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// Invoice is identified by (enterprise_id, invoice_number).
type Invoice struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	EnterpriseID   uuid.UUID       `db:"enterprise_id" json:"enterprise_id"`
	InvoiceNumber  string          `db:"invoice_number" json:"invoice_number"`
	DateOfIssue    time.Time       `db:"date_of_issue" json:"date_of_issue"`
	BillFrom       Party           `db:"bill_from" json:"bill_from"`
	BillTo         Party           `db:"bill_to" json:"bill_to"`
	Items          []LineItem      `db:"items" json:"items"`
	Notes          string          `db:"notes" json:"notes"`
	SubTotal       decimal.Decimal `db:"sub_total" json:"sub_total"`
	CGSTRate       decimal.Decimal `db:"cgst_rate" json:"cgst_rate"`
	SGSTRate       decimal.Decimal `db:"sgst_rate" json:"sgst_rate"`
	DiscountRate   decimal.Decimal `db:"discount_rate" json:"discount_rate"`
	CGSTAmount     decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	Total          decimal.Decimal `db:"total" json:"total"`
	Currency       string          `db:"currency" json:"currency"`
	Status         InvoiceStatus   `db:"status" json:"status"`
	PDFURL         string          `db:"pdf_url" json:"pdf_url"`
	WhatsappSent   bool            `db:"whatsapp_sent" json:"whatsapp_sent"`
	WhatsappSentAt *time.Time      `db:"whatsapp_sent_at" json:"whatsapp_sent_at"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// TaxConfig returns the invoice's tax configuration for total recomputation.
func (i *Invoice) TaxConfig() TaxConfiguration {
	return TaxConfiguration{
		CGSTRate:     i.CGSTRate,
		SGSTRate:     i.SGSTRate,
		DiscountRate: i.DiscountRate,
	}
}

// ApplyTotals copies computed totals onto the invoice's persisted fields.
func (i *Invoice) ApplyTotals(t InvoiceTotals) {
	i.SubTotal = t.SubTotal
	i.CGSTAmount = t.CGSTAmount
	i.SGSTAmount = t.SGSTAmount
	i.DiscountAmount = t.DiscountAmount
	i.Total = t.GrandTotal
}

// NotificationAttempt records one outbound send attempt for an invoice.
// Attempts transition pending -> sent or pending -> failed and are never
// retried automatically.
type NotificationAttempt struct {
	ID                uuid.UUID          `db:"id" json:"id"`
	EnterpriseID      uuid.UUID          `db:"enterprise_id" json:"enterprise_id"`
	InvoiceNumber     string             `db:"invoice_number" json:"invoice_number"`
	Channel           Channel            `db:"channel" json:"channel"`
	ArtifactURL       string             `db:"artifact_url" json:"artifact_url"`
	ArtifactKind      ReferenceKind      `db:"artifact_kind" json:"artifact_kind"`
	Status            NotificationStatus `db:"status" json:"status"`
	ProviderMessageID string             `db:"provider_message_id" json:"provider_message_id"`
	ErrorDetail       string             `db:"error_detail" json:"error_detail"`
	SentAt            *time.Time         `db:"sent_at" json:"sent_at"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
}

// CustomerStats summarizes the customer base of an enterprise.
type CustomerStats struct {
	TotalCustomers int             `db:"total_customers" json:"total_customers"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	AverageAmount  decimal.Decimal `db:"average_amount" json:"average_amount"`
}

// InvoiceStats summarizes invoice volume and value for an enterprise.
type InvoiceStats struct {
	TotalInvoices int             `db:"total_invoices" json:"total_invoices"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	AverageAmount decimal.Decimal `db:"average_amount" json:"average_amount"`
}

// MonthlyInvoiceStats holds per-month invoice counts and totals.
type MonthlyInvoiceStats struct {
	Year  int             `db:"year" json:"year"`
	Month int             `db:"month" json:"month"`
	Count int             `db:"count" json:"count"`
	Total decimal.Decimal `db:"total" json:"total"`
}
