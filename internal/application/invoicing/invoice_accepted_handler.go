package invoicing

import (
	"context"
	"fmt"

	"github.com/invoicelink/backend/internal/domain/identity"
	"github.com/invoicelink/backend/internal/domain/invoicing"
	"github.com/invoicelink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceAcceptedHandler handles InvoiceAcceptedEvent and notifies the
// owning agency that the client confirmed the project. Delivery is a
// structured log record; a mail transport can replace it without
// touching the accept flow.
type InvoiceAcceptedHandler struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewInvoiceAcceptedHandler creates a new handler for invoice accepted events
func NewInvoiceAcceptedHandler(userRepo identity.UserRepository, logger *zap.Logger) *InvoiceAcceptedHandler {
	return &InvoiceAcceptedHandler{
		userRepo: userRepo,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceAcceptedHandler) EventTypes() []string {
	return []string{invoicing.EventTypeInvoiceAccepted}
}

// Handle processes an InvoiceAcceptedEvent
func (h *InvoiceAcceptedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	acceptedEvent, ok := event.(*invoicing.InvoiceAcceptedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", invoicing.EventTypeInvoiceAccepted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			invoicing.EventTypeInvoiceAccepted, event.EventType())
	}

	owner, err := h.userRepo.FindByID(ctx, acceptedEvent.OwnerID())
	if err != nil {
		h.logger.Error("failed to load invoice owner for notification",
			zap.String("invoice_id", acceptedEvent.InvoiceID.String()),
			zap.String("owner_id", acceptedEvent.OwnerID().String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("invoice accepted, notifying agency",
		zap.String("invoice_id", acceptedEvent.InvoiceID.String()),
		zap.String("invoice_number", acceptedEvent.InvoiceNumber),
		zap.String("client_name", acceptedEvent.ClientName),
		zap.String("project_title", acceptedEvent.ProjectTitle),
		zap.String("total", acceptedEvent.Total.String()),
		zap.String("currency", acceptedEvent.Currency),
		zap.Time("accepted_at", acceptedEvent.AcceptedAt),
		zap.String("agency_email", owner.Email),
	)

	return nil
}

// Ensure InvoiceAcceptedHandler implements shared.EventHandler
var _ shared.EventHandler = (*InvoiceAcceptedHandler)(nil)
