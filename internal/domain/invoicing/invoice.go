package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/shared"
	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "DRAFT"
	InvoiceStatusSent     InvoiceStatus = "SENT"
	InvoiceStatusAccepted InvoiceStatus = "ACCEPTED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusAccepted:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusSent
	case InvoiceStatusSent:
		return target == InvoiceStatusAccepted
	case InvoiceStatusAccepted:
		return false // Terminal state, acceptance is irreversible
	}
	return false
}

const (
	maxClientNameLength   = 200
	maxProjectTitleLength = 200
	maxNotesLength        = 2000
	maxDescriptionLength  = 500
)

// LineItem represents one billable row on an invoice
type LineItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Position    int // preserves the order rows were entered in
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLineItem creates a new line item
func NewLineItem(invoiceID uuid.UUID, description string, quantity int64, unitPrice decimal.Decimal, position int) (*LineItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Line item description cannot be empty")
	}
	if len(description) > maxDescriptionLength {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", fmt.Sprintf("Line item description cannot exceed %d characters", maxDescriptionLength))
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price must be positive")
	}

	now := time.Now()
	return &LineItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Total returns the line total (quantity * unit price)
func (i *LineItem) Total() decimal.Decimal {
	return LineTotal(i.Quantity, i.UnitPrice)
}

// LineItemInput carries the caller-supplied fields of a line item.
// Items are always replaced as a whole collection, never patched.
type LineItemInput struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// InvoiceDetails carries the scalar fields of an invoice for
// create and full-replace update operations
type InvoiceDetails struct {
	ClientName   string
	ClientEmail  string
	ProjectTitle string
	Notes        string
	Currency     valueobject.Currency
	TaxPercent   decimal.Decimal
	DueDate      *time.Time
}

func (d *InvoiceDetails) validate() error {
	if strings.TrimSpace(d.ClientName) == "" {
		return shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if len(d.ClientName) > maxClientNameLength {
		return shared.NewDomainError("INVALID_CLIENT_NAME", fmt.Sprintf("Client name cannot exceed %d characters", maxClientNameLength))
	}
	if strings.TrimSpace(d.ClientEmail) == "" {
		return shared.NewDomainError("INVALID_CLIENT_EMAIL", "Client email cannot be empty")
	}
	if strings.TrimSpace(d.ProjectTitle) == "" {
		return shared.NewDomainError("INVALID_PROJECT_TITLE", "Project title cannot be empty")
	}
	if len(d.ProjectTitle) > maxProjectTitleLength {
		return shared.NewDomainError("INVALID_PROJECT_TITLE", fmt.Sprintf("Project title cannot exceed %d characters", maxProjectTitleLength))
	}
	if len(d.Notes) > maxNotesLength {
		return shared.NewDomainError("INVALID_NOTES", fmt.Sprintf("Notes cannot exceed %d characters", maxNotesLength))
	}
	if !d.Currency.IsSupported() {
		return shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency: %s", d.Currency))
	}
	if d.TaxPercent.IsNegative() || d.TaxPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_PERCENT", "Tax percent must be between 0 and 100")
	}
	return nil
}

// Invoice represents an invoice aggregate root.
// It is addressable through two distinct namespaces: the internal ID
// (owner operations, always paired with an ownership check) and the
// public Token (unauthenticated view/accept, no ownership check).
type Invoice struct {
	shared.OwnedAggregateRoot
	InvoiceNumber string
	Token         string
	ClientName    string
	ClientEmail   string
	ProjectTitle  string
	Notes         string
	Currency      valueobject.Currency
	TaxPercent    decimal.Decimal
	DueDate       *time.Time
	Status        InvoiceStatus
	SentAt        *time.Time
	AcceptedAt    *time.Time
	Items         []LineItem
}

// NewInvoice creates a new invoice in DRAFT status
func NewInvoice(ownerID uuid.UUID, invoiceNumber, token string, details InvoiceDetails, items []LineItemInput) (*Invoice, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if token == "" {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Public token cannot be empty")
	}
	if err := details.validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Invoice must have at least one line item")
	}

	invoice := &Invoice{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		InvoiceNumber:      invoiceNumber,
		Token:              token,
		ClientName:         strings.TrimSpace(details.ClientName),
		ClientEmail:        strings.TrimSpace(details.ClientEmail),
		ProjectTitle:       strings.TrimSpace(details.ProjectTitle),
		Notes:              details.Notes,
		Currency:           details.Currency,
		TaxPercent:         details.TaxPercent,
		DueDate:            details.DueDate,
		Status:             InvoiceStatusDraft,
	}

	if err := invoice.setItems(items); err != nil {
		return nil, err
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// UpdateDetails replaces the scalar fields of the invoice.
// Allowed while DRAFT or SENT, rejected once ACCEPTED.
func (inv *Invoice) UpdateDetails(details InvoiceDetails) error {
	if err := inv.guardMutable(); err != nil {
		return err
	}
	if err := details.validate(); err != nil {
		return err
	}

	inv.ClientName = strings.TrimSpace(details.ClientName)
	inv.ClientEmail = strings.TrimSpace(details.ClientEmail)
	inv.ProjectTitle = strings.TrimSpace(details.ProjectTitle)
	inv.Notes = details.Notes
	inv.Currency = details.Currency
	inv.TaxPercent = details.TaxPercent
	inv.DueDate = details.DueDate
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// ReplaceItems replaces the whole line item collection.
// Partial patches do not exist; callers always send the full list.
func (inv *Invoice) ReplaceItems(items []LineItemInput) error {
	if err := inv.guardMutable(); err != nil {
		return err
	}
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Invoice must have at least one line item")
	}
	if err := inv.setItems(items); err != nil {
		return err
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

func (inv *Invoice) setItems(items []LineItemInput) error {
	newItems := make([]LineItem, 0, len(items))
	for idx, input := range items {
		item, err := NewLineItem(inv.ID, input.Description, input.Quantity, input.UnitPrice, idx)
		if err != nil {
			return err
		}
		newItems = append(newItems, *item)
	}
	inv.Items = newItems
	return nil
}

// MarkSent transitions the invoice from DRAFT to SENT.
// Re-sending an already SENT invoice is an idempotent no-op.
func (inv *Invoice) MarkSent(now time.Time) error {
	switch inv.Status {
	case InvoiceStatusSent:
		return nil
	case InvoiceStatusAccepted:
		return shared.NewDomainError("ALREADY_ACCEPTED", "Invoice already accepted")
	}

	inv.Status = InvoiceStatusSent
	inv.SentAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceSentEvent(inv))

	return nil
}

// Accept transitions the invoice from SENT to ACCEPTED and stamps
// acceptedAt. Accepting a DRAFT invoice is rejected: a client must not
// be able to confirm a project the agency never sent.
func (inv *Invoice) Accept(now time.Time) error {
	switch inv.Status {
	case InvoiceStatusDraft:
		return shared.NewDomainError("NOT_YET_SENT", "Invoice has not been sent yet")
	case InvoiceStatusAccepted:
		return shared.NewDomainError("ALREADY_ACCEPTED", "Invoice already accepted")
	}

	inv.Status = InvoiceStatusAccepted
	inv.AcceptedAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceAcceptedEvent(inv))

	return nil
}

func (inv *Invoice) guardMutable() error {
	if inv.Status == InvoiceStatusAccepted {
		return shared.NewDomainError("ALREADY_ACCEPTED", "Invoice already accepted")
	}
	return nil
}

// IsAccepted returns true if the invoice is in the terminal ACCEPTED state
func (inv *Invoice) IsAccepted() bool {
	return inv.Status == InvoiceStatusAccepted
}

// Subtotal returns the sum of all line totals
func (inv *Invoice) Subtotal() decimal.Decimal {
	return Subtotal(inv.Items)
}

// TaxAmountValue returns the tax amount derived from the subtotal
func (inv *Invoice) TaxAmountValue() decimal.Decimal {
	return TaxAmount(inv.Subtotal(), inv.TaxPercent)
}

// TotalValue returns the grand total (subtotal + tax)
func (inv *Invoice) TotalValue() decimal.Decimal {
	t := CalculateTotals(inv.Items, inv.TaxPercent)
	return t.Total
}

// Totals returns all derived monetary figures in one call
func (inv *Invoice) Totals() Totals {
	return CalculateTotals(inv.Items, inv.TaxPercent)
}

// SubtotalMoney returns the subtotal tagged with the invoice currency.
// Every write path validates the currency, so construction cannot fail.
func (inv *Invoice) SubtotalMoney() valueobject.Money {
	return valueobject.MustNewMoney(inv.Subtotal(), inv.Currency)
}

// TaxAmountMoney returns the tax amount tagged with the invoice currency
func (inv *Invoice) TaxAmountMoney() valueobject.Money {
	return valueobject.MustNewMoney(inv.TaxAmountValue(), inv.Currency)
}

// TotalMoney returns the grand total tagged with the invoice currency
func (inv *Invoice) TotalMoney() valueobject.Money {
	return valueobject.MustNewMoney(inv.TotalValue(), inv.Currency)
}

// ItemCount returns the number of line items
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}
