package domain

// InvoiceStatus represents the lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ValidInvoiceStatuses enumerates the accepted status values.
var ValidInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusDraft:     true,
	InvoiceStatusSent:      true,
	InvoiceStatusPaid:      true,
	InvoiceStatusCancelled: true,
}

// CustomerStatus marks whether a customer is active.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Channel identifies the messaging provider used for a send attempt.
type Channel string

const (
	ChannelPersonal Channel = "personal"
	ChannelTwilio   Channel = "twilio"
	// ChannelNone marks attempts recorded while no provider was configured.
	ChannelNone Channel = "none"
)

// NotificationStatus represents the lifecycle of a send attempt.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// ReferenceKind distinguishes durable object-store references from
// session-local ephemeral ones.
type ReferenceKind string

const (
	ReferenceDurable   ReferenceKind = "durable"
	ReferenceEphemeral ReferenceKind = "ephemeral"
)

// DefaultCurrency is the currency symbol attached at presentation time.
// It carries no computation semantics.
const DefaultCurrency = "₹"
