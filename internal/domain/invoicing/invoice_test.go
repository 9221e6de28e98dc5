package invoicing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/shared"
	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() InvoiceDetails {
	due := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	return InvoiceDetails{
		ClientName:   "Acme Corp",
		ClientEmail:  "billing@acme.test",
		ProjectTitle: "Website Redesign",
		Notes:        "Net 30",
		Currency:     valueobject.USD,
		TaxPercent:   decimal.NewFromInt(10),
		DueDate:      &due,
	}
}

func validItems() []LineItemInput {
	return []LineItemInput{
		{Description: "Design", Quantity: 2, UnitPrice: decimal.RequireFromString("50.25")},
		{Description: "Hosting", Quantity: 1, UnitPrice: decimal.RequireFromString("25.00")},
	}
}

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), "INV-2026-0042", "a1b2c3", validDetails(), validItems())
	require.NoError(t, err)
	inv.ClearDomainEvents()
	return inv
}

func TestNewInvoice(t *testing.T) {
	ownerID := uuid.New()
	inv, err := NewInvoice(ownerID, "INV-2026-0042", "deadbeef", validDetails(), validItems())
	require.NoError(t, err)

	assert.Equal(t, ownerID, inv.OwnerID)
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Nil(t, inv.SentAt)
	assert.Nil(t, inv.AcceptedAt)
	assert.Len(t, inv.Items, 2)
	assert.Equal(t, "138.05", inv.TotalValue().StringFixed(2))

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())
}

func TestNewInvoice_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(d *InvoiceDetails, items *[]LineItemInput)
		wantCode string
	}{
		{
			name:     "empty client name",
			mutate:   func(d *InvoiceDetails, _ *[]LineItemInput) { d.ClientName = "  " },
			wantCode: "INVALID_CLIENT_NAME",
		},
		{
			name:     "empty client email",
			mutate:   func(d *InvoiceDetails, _ *[]LineItemInput) { d.ClientEmail = "" },
			wantCode: "INVALID_CLIENT_EMAIL",
		},
		{
			name:     "empty project title",
			mutate:   func(d *InvoiceDetails, _ *[]LineItemInput) { d.ProjectTitle = "" },
			wantCode: "INVALID_PROJECT_TITLE",
		},
		{
			name:     "unsupported currency",
			mutate:   func(d *InvoiceDetails, _ *[]LineItemInput) { d.Currency = "XXX" },
			wantCode: "INVALID_CURRENCY",
		},
		{
			name:     "negative tax percent",
			mutate:   func(d *InvoiceDetails, _ *[]LineItemInput) { d.TaxPercent = decimal.NewFromInt(-1) },
			wantCode: "INVALID_TAX_PERCENT",
		},
		{
			name:     "tax percent above 100",
			mutate:   func(d *InvoiceDetails, _ *[]LineItemInput) { d.TaxPercent = decimal.RequireFromString("100.01") },
			wantCode: "INVALID_TAX_PERCENT",
		},
		{
			name:     "no items",
			mutate:   func(_ *InvoiceDetails, items *[]LineItemInput) { *items = nil },
			wantCode: "NO_ITEMS",
		},
		{
			name: "zero quantity",
			mutate: func(_ *InvoiceDetails, items *[]LineItemInput) {
				(*items)[0].Quantity = 0
			},
			wantCode: "INVALID_QUANTITY",
		},
		{
			name: "zero unit price",
			mutate: func(_ *InvoiceDetails, items *[]LineItemInput) {
				(*items)[0].UnitPrice = decimal.Zero
			},
			wantCode: "INVALID_UNIT_PRICE",
		},
		{
			name: "blank item description",
			mutate: func(_ *InvoiceDetails, items *[]LineItemInput) {
				(*items)[0].Description = "   "
			},
			wantCode: "INVALID_DESCRIPTION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validDetails()
			items := validItems()
			tt.mutate(&details, &items)

			_, err := NewInvoice(uuid.New(), "INV-2026-0042", "tok", details, items)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, InvoiceStatusDraft.CanTransitionTo(InvoiceStatusSent))
	assert.True(t, InvoiceStatusSent.CanTransitionTo(InvoiceStatusAccepted))

	assert.False(t, InvoiceStatusDraft.CanTransitionTo(InvoiceStatusAccepted))
	assert.False(t, InvoiceStatusAccepted.CanTransitionTo(InvoiceStatusSent))
	assert.False(t, InvoiceStatusAccepted.CanTransitionTo(InvoiceStatusDraft))
	assert.False(t, InvoiceStatusSent.CanTransitionTo(InvoiceStatusDraft))
}

func TestInvoice_MarkSent(t *testing.T) {
	inv := newTestInvoice(t)
	now := time.Now()

	require.NoError(t, inv.MarkSent(now))
	assert.Equal(t, InvoiceStatusSent, inv.Status)
	require.NotNil(t, inv.SentAt)
	assert.Equal(t, now, *inv.SentAt)

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeInvoiceSent, events[0].EventType())
}

func TestInvoice_MarkSent_Idempotent(t *testing.T) {
	inv := newTestInvoice(t)
	first := time.Now()
	require.NoError(t, inv.MarkSent(first))
	inv.ClearDomainEvents()

	// Re-sending is not an error and does not move the timestamp
	require.NoError(t, inv.MarkSent(first.Add(time.Hour)))
	assert.Equal(t, InvoiceStatusSent, inv.Status)
	assert.Equal(t, first, *inv.SentAt)
	assert.Empty(t, inv.GetDomainEvents())
}

func TestInvoice_MarkSent_AfterAccepted(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.MarkSent(time.Now()))
	require.NoError(t, inv.Accept(time.Now()))

	err := inv.MarkSent(time.Now())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_ACCEPTED", domainErr.Code)
}

func TestInvoice_Accept(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.MarkSent(time.Now()))
	inv.ClearDomainEvents()

	now := time.Now()
	require.NoError(t, inv.Accept(now))

	assert.Equal(t, InvoiceStatusAccepted, inv.Status)
	require.NotNil(t, inv.AcceptedAt)
	assert.Equal(t, now, *inv.AcceptedAt)

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeInvoiceAccepted, events[0].EventType())
}

func TestInvoice_Accept_Draft(t *testing.T) {
	inv := newTestInvoice(t)

	err := inv.Accept(time.Now())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_YET_SENT", domainErr.Code)
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Nil(t, inv.AcceptedAt)
}

func TestInvoice_Accept_Twice(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.MarkSent(time.Now()))

	first := time.Now()
	require.NoError(t, inv.Accept(first))

	err := inv.Accept(first.Add(time.Minute))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_ACCEPTED", domainErr.Code)
	// The second call must not move the timestamp
	assert.Equal(t, first, *inv.AcceptedAt)
}

func TestInvoice_UpdateDetails(t *testing.T) {
	inv := newTestInvoice(t)

	details := validDetails()
	details.ClientName = "New Client"
	details.TaxPercent = decimal.NewFromInt(20)

	require.NoError(t, inv.UpdateDetails(details))
	assert.Equal(t, "New Client", inv.ClientName)
	assert.Equal(t, "150.60", inv.TotalValue().StringFixed(2))
}

func TestInvoice_UpdateDetails_WhileSent(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.MarkSent(time.Now()))

	// SENT invoices are still editable
	require.NoError(t, inv.UpdateDetails(validDetails()))
}

func TestInvoice_UpdateDetails_AfterAccepted(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.MarkSent(time.Now()))
	require.NoError(t, inv.Accept(time.Now()))
	before := inv.ClientName

	err := inv.UpdateDetails(validDetails())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_ACCEPTED", domainErr.Code)
	assert.Equal(t, before, inv.ClientName)
}

func TestInvoice_ReplaceItems(t *testing.T) {
	inv := newTestInvoice(t)

	newItems := []LineItemInput{
		{Description: "Retainer", Quantity: 1, UnitPrice: decimal.NewFromInt(500)},
	}
	require.NoError(t, inv.ReplaceItems(newItems))

	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Retainer", inv.Items[0].Description)
	assert.Equal(t, inv.ID, inv.Items[0].InvoiceID)
	assert.Equal(t, "550.00", inv.TotalValue().StringFixed(2))
}

func TestInvoice_ReplaceItems_Empty(t *testing.T) {
	inv := newTestInvoice(t)

	err := inv.ReplaceItems(nil)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_ITEMS", domainErr.Code)
	assert.Len(t, inv.Items, 2)
}

func TestInvoice_ReplaceItems_AfterAccepted(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.MarkSent(time.Now()))
	require.NoError(t, inv.Accept(time.Now()))

	err := inv.ReplaceItems(validItems())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_ACCEPTED", domainErr.Code)
}

func TestInvoice_ReplaceItems_InvalidItemLeavesCollectionUntouched(t *testing.T) {
	inv := newTestInvoice(t)

	err := inv.ReplaceItems([]LineItemInput{
		{Description: "Valid", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		{Description: "Broken", Quantity: -1, UnitPrice: decimal.NewFromInt(10)},
	})
	require.Error(t, err)
	assert.Len(t, inv.Items, 2)
	assert.Equal(t, "Design", inv.Items[0].Description)
}

func TestInvoice_MutationsIncrementVersion(t *testing.T) {
	inv := newTestInvoice(t)
	require.Equal(t, 1, inv.GetVersion())

	require.NoError(t, inv.UpdateDetails(validDetails()))
	assert.Equal(t, 2, inv.GetVersion())

	require.NoError(t, inv.ReplaceItems(validItems()))
	assert.Equal(t, 3, inv.GetVersion())

	require.NoError(t, inv.MarkSent(time.Now()))
	assert.Equal(t, 4, inv.GetVersion())

	// Idempotent re-send must not bump the version
	require.NoError(t, inv.MarkSent(time.Now()))
	assert.Equal(t, 4, inv.GetVersion())

	require.NoError(t, inv.Accept(time.Now()))
	assert.Equal(t, 5, inv.GetVersion())
}

func TestInvoice_MoneyAccessors(t *testing.T) {
	inv := newTestInvoice(t)

	subtotal := inv.SubtotalMoney()
	assert.Equal(t, valueobject.USD, subtotal.Currency())
	assert.Equal(t, "125.50", subtotal.StringFixed(2))

	assert.Equal(t, "12.55", inv.TaxAmountMoney().StringFixed(2))

	total := inv.TotalMoney()
	assert.Equal(t, valueobject.USD, total.Currency())
	assert.True(t, total.Amount().Equal(inv.TotalValue()))
}
