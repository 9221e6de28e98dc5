package invoicing

import (
	"context"
	"time"

	"github.com/invoicelink/backend/internal/domain/identity"
	"github.com/invoicelink/backend/internal/domain/invoicing"
	"github.com/invoicelink/backend/internal/domain/shared"
)

// PublicInvoiceService handles the unauthenticated token surface.
// The token is the only credential: possession grants read and accept,
// nothing else. No owner check happens here.
type PublicInvoiceService struct {
	invoiceRepo    invoicing.InvoiceRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
}

// NewPublicInvoiceService creates a new PublicInvoiceService
func NewPublicInvoiceService(invoiceRepo invoicing.InvoiceRepository, userRepo identity.UserRepository) *PublicInvoiceService {
	return &PublicInvoiceService{
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
	}
}

// SetEventPublisher sets the event publisher for notification handlers
func (s *PublicInvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByToken returns the public view of an invoice
func (s *PublicInvoiceService) GetByToken(ctx context.Context, token string) (*PublicInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.toPublicResponse(ctx, invoice)
}

// Accept transitions a SENT invoice to ACCEPTED on behalf of the
// client holding the token. The transition is applied as a conditional
// update so two concurrent accepts cannot both succeed; the loser of
// the race gets ALREADY_ACCEPTED, same as a late repeat call.
func (s *PublicInvoiceService) Accept(ctx context.Context, token string) (*PublicInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	// Domain guards give the accurate message for DRAFT and ACCEPTED
	now := time.Now()
	if err := invoice.Accept(now); err != nil {
		return nil, err
	}

	accepted, err := s.invoiceRepo.Accept(ctx, invoice.ID, now)
	if err != nil {
		return nil, err
	}
	if !accepted {
		// The guard passed on our read but the conditional write
		// matched no row: a concurrent accept landed first.
		return nil, shared.NewDomainError("ALREADY_ACCEPTED", "Invoice already accepted")
	}

	s.publishEvents(ctx, invoice)

	return s.toPublicResponse(ctx, invoice)
}

func (s *PublicInvoiceService) toPublicResponse(ctx context.Context, invoice *invoicing.Invoice) (*PublicInvoiceResponse, error) {
	owner, err := s.userRepo.FindByID(ctx, invoice.OwnerID)
	if err != nil {
		return nil, err
	}

	items := make([]LineItemResponse, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = ToLineItemResponse(item)
	}

	totals := invoice.Totals()

	return &PublicInvoiceResponse{
		InvoiceNumber: invoice.InvoiceNumber,
		ClientName:    invoice.ClientName,
		ProjectTitle:  invoice.ProjectTitle,
		Notes:         invoice.Notes,
		Currency:      invoice.Currency.String(),
		TaxPercent:    invoice.TaxPercent,
		DueDate:       invoice.DueDate,
		DueDateText:   FormatDate(invoice.DueDate),
		Status:        invoice.Status.String(),
		SentAt:        invoice.SentAt,
		AcceptedAt:    invoice.AcceptedAt,
		Items:         items,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
		SubtotalText:  FormatMoney(invoice.SubtotalMoney()),
		TaxAmountText: FormatMoney(invoice.TaxAmountMoney()),
		TotalText:     FormatMoney(invoice.TotalMoney()),
		AgencyName:    owner.DisplayName(),
		AgencyEmail:   owner.Email,
	}, nil
}

func (s *PublicInvoiceService) publishEvents(ctx context.Context, invoice *invoicing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range invoice.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	invoice.ClearDomainEvents()
}
