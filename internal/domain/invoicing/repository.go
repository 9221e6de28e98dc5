package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence.
// Owner operations key on the internal ID plus an ownership check;
// public operations key on the unguessable token with no ownership
// check. The two lookup paths are never unified.
type InvoiceRepository interface {
	// FindByIDForOwner finds an invoice by ID scoped to its owner.
	// A missing invoice and an invoice owned by someone else both
	// return shared.ErrNotFound so existence is not leaked.
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Invoice, error)

	// FindByToken finds an invoice by its public token
	FindByToken(ctx context.Context, token string) (*Invoice, error)

	// FindAllForOwner finds all invoices for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// CountForOwner counts invoices for an owner
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatusForOwner counts invoices in a given status for an owner
	CountByStatusForOwner(ctx context.Context, ownerID uuid.UUID, status InvoiceStatus) (int64, error)

	// Save creates or updates an invoice together with its line items.
	// Items are replaced as a whole collection.
	Save(ctx context.Context, invoice *Invoice) error

	// DeleteForOwner deletes an invoice and cascades to its items.
	// Allowed at any status, owner only.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// MarkSent atomically promotes a DRAFT invoice to SENT.
	// Returns false when no row matched (already SENT or ACCEPTED);
	// the caller classifies that by re-reading.
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (bool, error)

	// Accept atomically promotes a SENT invoice to ACCEPTED, stamping
	// acceptedAt in the same statement. The guard is evaluated inside
	// the UPDATE itself so two concurrent accepts cannot both pass:
	// exactly one caller sees true.
	Accept(ctx context.Context, id uuid.UUID, acceptedAt time.Time) (bool, error)

	// ExistsByNumber checks if an invoice number is already taken
	// for an owner. Used to redraw colliding number candidates.
	ExistsByNumber(ctx context.Context, ownerID uuid.UUID, invoiceNumber string) (bool, error)
}
