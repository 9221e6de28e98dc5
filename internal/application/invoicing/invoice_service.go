package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/identity"
	"github.com/invoicelink/backend/internal/domain/invoicing"
	"github.com/invoicelink/backend/internal/domain/shared"
	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
)

// numberDrawAttempts bounds the collision-check loop for invoice numbers
const numberDrawAttempts = 5

// InvoiceService handles owner-facing invoice operations.
// Every operation is scoped to the authenticated owner; a missing
// invoice and someone else's invoice are both reported as NOT_FOUND.
type InvoiceService struct {
	invoiceRepo    invoicing.InvoiceRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo invoicing.InvoiceRepository, userRepo identity.UserRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
	}
}

// SetEventPublisher sets the event publisher for notification handlers
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new invoice in DRAFT status.
// The invoice number candidate is redrawn until it does not collide
// with an existing number for this owner.
func (s *InvoiceService) Create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		user, err := s.userRepo.FindByID(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		currency = user.DefaultCurrency
	}

	number, err := s.allocateNumber(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	token, err := invoicing.NewPublicToken()
	if err != nil {
		return nil, err
	}

	invoice, err := invoicing.NewInvoice(ownerID, number, token, invoicing.InvoiceDetails{
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ProjectTitle: req.ProjectTitle,
		Notes:        req.Notes,
		Currency:     currency,
		TaxPercent:   req.TaxPercent,
		DueDate:      req.DueDate,
	}, toDomainItems(req.Items))
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID for its owner
func (s *InvoiceService) GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices for an owner with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, ownerID uuid.UUID, filter InvoiceListFilter) ([]InvoiceListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	invoices, err := s.invoiceRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceListItemResponse(&invoices[i])
	}

	return responses, total, nil
}

// Update performs a full replace of the invoice's scalar fields and
// line items. Allowed while DRAFT or SENT; rejected once ACCEPTED.
func (s *InvoiceService) Update(ctx context.Context, ownerID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.UpdateDetails(invoicing.InvoiceDetails{
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ProjectTitle: req.ProjectTitle,
		Notes:        req.Notes,
		Currency:     valueobject.Currency(req.Currency),
		TaxPercent:   req.TaxPercent,
		DueDate:      req.DueDate,
	}); err != nil {
		return nil, err
	}

	if err := invoice.ReplaceItems(toDomainItems(req.Items)); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Send transitions an invoice from DRAFT to SENT. Re-sending an
// already SENT invoice succeeds without changing anything.
func (s *InvoiceService) Send(ctx context.Context, ownerID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status == invoicing.InvoiceStatusSent {
		response := ToInvoiceResponse(invoice)
		return &response, nil
	}
	if invoice.IsAccepted() {
		return nil, shared.NewDomainError("ALREADY_ACCEPTED", "Invoice already accepted")
	}

	now := time.Now()
	updated, err := s.invoiceRepo.MarkSent(ctx, invoice.ID, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race to a concurrent send or accept; re-read to
		// report the state that actually landed.
		return s.GetByID(ctx, ownerID, invoiceID)
	}

	if err := invoice.MarkSent(now); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete deletes an invoice and its items. Allowed at any status.
func (s *InvoiceService) Delete(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, invoiceID)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.DeleteForOwner(ctx, ownerID, invoiceID); err != nil {
		return err
	}

	invoice.AddDomainEvent(invoicing.NewInvoiceDeletedEvent(invoice))
	s.publishEvents(ctx, invoice)

	return nil
}

// GetStatusSummary returns invoice counts by status for an owner
func (s *InvoiceService) GetStatusSummary(ctx context.Context, ownerID uuid.UUID) (*InvoiceStatusSummary, error) {
	draft, err := s.invoiceRepo.CountByStatusForOwner(ctx, ownerID, invoicing.InvoiceStatusDraft)
	if err != nil {
		return nil, err
	}
	sent, err := s.invoiceRepo.CountByStatusForOwner(ctx, ownerID, invoicing.InvoiceStatusSent)
	if err != nil {
		return nil, err
	}
	accepted, err := s.invoiceRepo.CountByStatusForOwner(ctx, ownerID, invoicing.InvoiceStatusAccepted)
	if err != nil {
		return nil, err
	}

	return &InvoiceStatusSummary{
		Draft:    draft,
		Sent:     sent,
		Accepted: accepted,
		Total:    draft + sent + accepted,
	}, nil
}

func (s *InvoiceService) allocateNumber(ctx context.Context, ownerID uuid.UUID) (string, error) {
	now := time.Now()
	for i := 0; i < numberDrawAttempts; i++ {
		candidate, err := invoicing.NewInvoiceNumberCandidate(now)
		if err != nil {
			return "", err
		}
		exists, err := s.invoiceRepo.ExistsByNumber(ctx, ownerID, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("NUMBER_EXHAUSTED", "Could not allocate a unique invoice number")
}

func (s *InvoiceService) publishEvents(ctx context.Context, invoice *invoicing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range invoice.GetDomainEvents() {
		// Event handling is best effort; failures must not fail the request
		_ = s.eventPublisher.Publish(ctx, event)
	}
	invoice.ClearDomainEvents()
}

func toDomainItems(items []LineItemInput) []invoicing.LineItemInput {
	result := make([]invoicing.LineItemInput, len(items))
	for i, item := range items {
		result[i] = invoicing.LineItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return result
}
