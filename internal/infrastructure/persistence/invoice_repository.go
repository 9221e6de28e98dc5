package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/invoicing"
	"github.com/invoicelink/backend/internal/domain/shared"
	"github.com/invoicelink/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("line_items.position ASC")
}

// FindByIDForOwner finds an invoice by ID scoped to its owner.
// Missing and foreign-owned invoices are indistinguishable to the caller.
func (r *GormInvoiceRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByToken finds an invoice by its public token
func (r *GormInvoiceRepository) FindByToken(ctx context.Context, token string) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		Where("token = ?", token).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds all invoices for an owner with filtering
func (r *GormInvoiceRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	var found []models.InvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
			Preload("Items", preloadItems).
			Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&found).Error; err != nil {
		return nil, err
	}

	invoices := make([]invoicing.Invoice, len(found))
	for i := range found {
		invoices[i] = *found[i].ToDomain()
	}
	return invoices, nil
}

// CountForOwner counts invoices for an owner with optional filters
func (r *GormInvoiceRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatusForOwner counts invoices in a given status for an owner
func (r *GormInvoiceRepository) CountByStatusForOwner(ctx context.Context, ownerID uuid.UUID, status invoicing.InvoiceStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an invoice together with its line items.
// Items are replaced as a whole collection.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := model.Items
		model.Items = nil

		if err := tx.Save(model).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(items))
		for i, item := range items {
			currentItemIDs[i] = item.ID
		}

		// Delete items no longer in the collection
		if len(currentItemIDs) > 0 {
			if err := tx.Where("invoice_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
				Delete(&models.LineItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("invoice_id = ?", model.ID).
				Delete(&models.LineItemModel{}).Error; err != nil {
				return err
			}
		}

		for i := range items {
			items[i].InvoiceID = model.ID
			if err := tx.Save(&items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteForOwner deletes an invoice and cascades to its items
func (r *GormInvoiceRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.InvoiceModel
		if err := tx.Where("owner_id = ? AND id = ?", ownerID, id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Where("invoice_id = ?", id).Delete(&models.LineItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.InvoiceModel{}, "owner_id = ? AND id = ?", ownerID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// MarkSent atomically promotes a DRAFT invoice to SENT.
// The status guard lives inside the UPDATE so concurrent sends
// cannot both match.
func (r *GormInvoiceRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ? AND status = ?", id, invoicing.InvoiceStatusDraft).
		Updates(map[string]interface{}{
			"status":     invoicing.InvoiceStatusSent,
			"sent_at":    sentAt,
			"updated_at": time.Now(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Accept atomically promotes a SENT invoice to ACCEPTED.
// Exactly one of two concurrent accepts sees true.
func (r *GormInvoiceRepository) Accept(ctx context.Context, id uuid.UUID, acceptedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ? AND status = ?", id, invoicing.InvoiceStatusSent).
		Updates(map[string]interface{}{
			"status":      invoicing.InvoiceStatusAccepted,
			"accepted_at": acceptedAt,
			"updated_at":  time.Now(),
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExistsByNumber checks if an invoice number is already taken for an owner
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, ownerID uuid.UUID, invoiceNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("owner_id = ? AND invoice_number = ?", ownerID, invoiceNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR client_name ILIKE ? OR project_title ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
