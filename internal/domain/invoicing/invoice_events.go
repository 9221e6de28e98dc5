package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated  = "InvoiceCreated"
	EventTypeInvoiceSent     = "InvoiceSent"
	EventTypeInvoiceAccepted = "InvoiceAccepted"
	EventTypeInvoiceDeleted  = "InvoiceDeleted"
)

// InvoiceCreatedEvent is raised when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	ProjectTitle  string          `json:"project_title"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(invoice *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, invoice.ID, invoice.OwnerID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		ClientName:      invoice.ClientName,
		ProjectTitle:    invoice.ProjectTitle,
		Total:           invoice.TotalValue(),
		Currency:        invoice.Currency.String(),
	}
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return EventTypeInvoiceCreated
}

// InvoiceSentEvent is raised when an invoice transitions to SENT
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	ClientEmail   string    `json:"client_email"`
	SentAt        time.Time `json:"sent_at"`
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(invoice *Invoice) *InvoiceSentEvent {
	var sentAt time.Time
	if invoice.SentAt != nil {
		sentAt = *invoice.SentAt
	}
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSent, AggregateTypeInvoice, invoice.ID, invoice.OwnerID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		ClientEmail:     invoice.ClientEmail,
		SentAt:          sentAt,
	}
}

// EventType returns the event type name
func (e *InvoiceSentEvent) EventType() string {
	return EventTypeInvoiceSent
}

// InvoiceAcceptedEvent is raised when a client accepts an invoice.
// Handlers use it to notify the owning agency.
type InvoiceAcceptedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	ProjectTitle  string          `json:"project_title"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	AcceptedAt    time.Time       `json:"accepted_at"`
}

// NewInvoiceAcceptedEvent creates a new InvoiceAcceptedEvent
func NewInvoiceAcceptedEvent(invoice *Invoice) *InvoiceAcceptedEvent {
	var acceptedAt time.Time
	if invoice.AcceptedAt != nil {
		acceptedAt = *invoice.AcceptedAt
	}
	return &InvoiceAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceAccepted, AggregateTypeInvoice, invoice.ID, invoice.OwnerID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		ClientName:      invoice.ClientName,
		ProjectTitle:    invoice.ProjectTitle,
		Total:           invoice.TotalValue(),
		Currency:        invoice.Currency.String(),
		AcceptedAt:      acceptedAt,
	}
}

// EventType returns the event type name
func (e *InvoiceAcceptedEvent) EventType() string {
	return EventTypeInvoiceAccepted
}

// InvoiceDeletedEvent is raised when an owner deletes an invoice
type InvoiceDeletedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Status        string    `json:"status"`
}

// NewInvoiceDeletedEvent creates a new InvoiceDeletedEvent
func NewInvoiceDeletedEvent(invoice *Invoice) *InvoiceDeletedEvent {
	return &InvoiceDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceDeleted, AggregateTypeInvoice, invoice.ID, invoice.OwnerID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		Status:          invoice.Status.String(),
	}
}

// EventType returns the event type name
func (e *InvoiceDeletedEvent) EventType() string {
	return EventTypeInvoiceDeleted
}
