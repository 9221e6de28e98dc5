package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/invoicing"
	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// Invoice numbers are unique per owner; public tokens are globally unique.
type InvoiceModel struct {
	AggregateModel
	OwnerID       uuid.UUID               `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_owner_number,priority:1"`
	InvoiceNumber string                  `gorm:"type:varchar(20);not null;uniqueIndex:idx_invoices_owner_number,priority:2"`
	Token         string                  `gorm:"type:varchar(64);not null;uniqueIndex"`
	ClientName    string                  `gorm:"type:varchar(200);not null"`
	ClientEmail   string                  `gorm:"type:varchar(320);not null"`
	ProjectTitle  string                  `gorm:"type:varchar(200);not null"`
	Notes         string                  `gorm:"type:text"`
	Currency      string                  `gorm:"type:varchar(3);not null"`
	TaxPercent    decimal.Decimal         `gorm:"type:decimal(5,2);not null;default:0"`
	DueDate       *time.Time              `gorm:"type:date"`
	Status        invoicing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SentAt        *time.Time
	AcceptedAt    *time.Time
	Items         []LineItemModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	invoice := &invoicing.Invoice{
		InvoiceNumber: m.InvoiceNumber,
		Token:         m.Token,
		ClientName:    m.ClientName,
		ClientEmail:   m.ClientEmail,
		ProjectTitle:  m.ProjectTitle,
		Notes:         m.Notes,
		Currency:      valueobject.Currency(m.Currency),
		TaxPercent:    m.TaxPercent,
		DueDate:       m.DueDate,
		Status:        m.Status,
		SentAt:        m.SentAt,
		AcceptedAt:    m.AcceptedAt,
		Items:         make([]invoicing.LineItem, len(m.Items)),
	}
	m.PopulateAggregateRoot(&invoice.BaseAggregateRoot)
	invoice.OwnerID = m.OwnerID
	for i, item := range m.Items {
		invoice.Items[i] = *item.ToDomain()
	}
	return invoice
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.OwnerID = inv.OwnerID
	m.InvoiceNumber = inv.InvoiceNumber
	m.Token = inv.Token
	m.ClientName = inv.ClientName
	m.ClientEmail = inv.ClientEmail
	m.ProjectTitle = inv.ProjectTitle
	m.Notes = inv.Notes
	m.Currency = string(inv.Currency)
	m.TaxPercent = inv.TaxPercent
	m.DueDate = inv.DueDate
	m.Status = inv.Status
	m.SentAt = inv.SentAt
	m.AcceptedAt = inv.AcceptedAt
	m.Items = make([]LineItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = *LineItemModelFromDomain(&item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// LineItemModel is the persistence model for the LineItem entity
type LineItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Position    int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToDomain converts the persistence model to a domain LineItem
func (m *LineItemModel) ToDomain() *invoicing.LineItem {
	return &invoicing.LineItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// LineItemModelFromDomain creates a new persistence model from a domain LineItem
func LineItemModelFromDomain(item *invoicing.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:          item.ID,
		InvoiceID:   item.InvoiceID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Position:    item.Position,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
