package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
)

// ==================== Request DTOs ====================

// LineItemInput represents one line item in a create/update request
type LineItemInput struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	ClientName   string          `json:"client_name" binding:"required,min=1,max=200"`
	ClientEmail  string          `json:"client_email" binding:"required,email"`
	ProjectTitle string          `json:"project_title" binding:"required,min=1,max=200"`
	Notes        string          `json:"notes" binding:"max=2000"`
	Currency     string          `json:"currency" binding:"currency"` // defaults to the account's currency
	TaxPercent   decimal.Decimal `json:"tax_percent"`
	DueDate      *time.Time      `json:"due_date"`
	Items        []LineItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest is a full replace: every scalar field and the
// complete item collection are supplied on each update
type UpdateInvoiceRequest struct {
	ClientName   string          `json:"client_name" binding:"required,min=1,max=200"`
	ClientEmail  string          `json:"client_email" binding:"required,email"`
	ProjectTitle string          `json:"project_title" binding:"required,min=1,max=200"`
	Notes        string          `json:"notes" binding:"max=2000"`
	Currency     string          `json:"currency" binding:"required,currency"`
	TaxPercent   decimal.Decimal `json:"tax_percent"`
	DueDate      *time.Time      `json:"due_date"`
	Items        []LineItemInput `json:"items" binding:"required,min=1,dive"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=DRAFT SENT ACCEPTED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ==================== Response DTOs ====================

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in owner-facing API responses
type InvoiceResponse struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	Token         string             `json:"token"`
	ClientName    string             `json:"client_name"`
	ClientEmail   string             `json:"client_email"`
	ProjectTitle  string             `json:"project_title"`
	Notes         string             `json:"notes,omitempty"`
	Currency      string             `json:"currency"`
	TaxPercent    decimal.Decimal    `json:"tax_percent"`
	DueDate       *time.Time         `json:"due_date,omitempty"`
	Status        string             `json:"status"`
	SentAt        *time.Time         `json:"sent_at,omitempty"`
	AcceptedAt    *time.Time         `json:"accepted_at,omitempty"`
	Items         []LineItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InvoiceListItemResponse represents an invoice row in list responses
type InvoiceListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	ProjectTitle  string          `json:"project_title"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Total         decimal.Decimal `json:"total"`
	TotalDisplay  string          `json:"total_display"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PublicInvoiceResponse is the payload for the unauthenticated token
// view. It never contains the internal invoice ID or the owner's user
// ID; the token is the only identifier the client holds.
type PublicInvoiceResponse struct {
	InvoiceNumber string             `json:"invoice_number"`
	ClientName    string             `json:"client_name"`
	ProjectTitle  string             `json:"project_title"`
	Notes         string             `json:"notes,omitempty"`
	Currency      string             `json:"currency"`
	TaxPercent    decimal.Decimal    `json:"tax_percent"`
	DueDate       *time.Time         `json:"due_date,omitempty"`
	DueDateText   string             `json:"due_date_text"`
	Status        string             `json:"status"`
	SentAt        *time.Time         `json:"sent_at,omitempty"`
	AcceptedAt    *time.Time         `json:"accepted_at,omitempty"`
	Items         []LineItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	Total         decimal.Decimal    `json:"total"`
	SubtotalText  string             `json:"subtotal_text"`
	TaxAmountText string             `json:"tax_amount_text"`
	TotalText     string             `json:"total_text"`
	AgencyName    string             `json:"agency_name"`
	AgencyEmail   string             `json:"agency_email"`
}

// InvoiceStatusSummary aggregates invoice counts by status
type InvoiceStatusSummary struct {
	Draft    int64 `json:"draft"`
	Sent     int64 `json:"sent"`
	Accepted int64 `json:"accepted"`
	Total    int64 `json:"total"`
}

// ==================== Converters ====================

// ToLineItemResponse converts a domain line item to a response DTO
func ToLineItemResponse(item invoicing.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		LineTotal:   item.Total(),
	}
}

// ToInvoiceResponse converts a domain invoice to an owner response DTO
func ToInvoiceResponse(invoice *invoicing.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = ToLineItemResponse(item)
	}

	totals := invoice.Totals()

	return InvoiceResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		Token:         invoice.Token,
		ClientName:    invoice.ClientName,
		ClientEmail:   invoice.ClientEmail,
		ProjectTitle:  invoice.ProjectTitle,
		Notes:         invoice.Notes,
		Currency:      invoice.Currency.String(),
		TaxPercent:    invoice.TaxPercent,
		DueDate:       invoice.DueDate,
		Status:        invoice.Status.String(),
		SentAt:        invoice.SentAt,
		AcceptedAt:    invoice.AcceptedAt,
		Items:         items,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
}

// ToInvoiceListItemResponse converts a domain invoice to a list row DTO
func ToInvoiceListItemResponse(invoice *invoicing.Invoice) InvoiceListItemResponse {
	total := invoice.TotalValue()
	return InvoiceListItemResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		ClientName:    invoice.ClientName,
		ProjectTitle:  invoice.ProjectTitle,
		Currency:      invoice.Currency.String(),
		Status:        invoice.Status.String(),
		DueDate:       invoice.DueDate,
		Total:         total,
		TotalDisplay:  FormatMoney(invoice.TotalMoney()),
		ItemCount:     invoice.ItemCount(),
		CreatedAt:     invoice.CreatedAt,
	}
}
