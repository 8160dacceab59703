package invoices

import (
	"context"

	"github.com/google/uuid"
	"github.com/rendypratama/invoicehub-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together invoice persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindProduct loads the product referenced by an invoice line.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// TakeStock decrements a product's stock by quantity, but only when enough
// stock is available. The guard lives in the WHERE clause so concurrent
// requests can never drive stock below zero. Returns false when the product
// had insufficient stock.
func (r *Repository) TakeStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CreateInvoice inserts the invoice header.
func (r *Repository) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// CreateLineItems inserts the invoice's line items.
func (r *Repository) CreateLineItems(ctx context.Context, items []models.InvoiceLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ListInvoices returns all invoices with their line items and the products
// the lines point at, newest first.
func (r *Repository) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var rows []models.Invoice
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("LineItems.Product").
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// FindInvoice loads a single invoice with its line items and products.
func (r *Repository) FindInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("LineItems.Product").
		First(&invoice, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
