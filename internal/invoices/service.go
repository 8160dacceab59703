package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rendypratama/invoicehub-backend/pkg/db/models"
	pkgerrors "github.com/rendypratama/invoicehub-backend/pkg/errors"
	"gorm.io/gorm"
)

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes invoice operations.
type Service interface {
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceDTO, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error)
	ListInvoices(ctx context.Context) ([]InvoiceDTO, error)
}

type service struct {
	repo *Repository
	tx   txRunner
}

// NewService builds an invoice service.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoices: repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("invoices: transaction runner is required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// CreateInvoice runs the whole creation workflow inside one transaction:
// every line loads its product, takes stock with a guarded decrement, and
// snapshots the unit price. Any failure rolls the entire invoice back,
// stock decrements included.
func (s *service) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceDTO, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	var created *models.Invoice
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		totalCents := 0
		lineItems := make([]models.InvoiceLineItem, 0, len(input.Items))
		for position, item := range input.Items {
			product, err := repo.FindProduct(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Product with ID %s not found", item.ProductID))
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}

			taken, err := repo.TakeStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !taken {
				return pkgerrors.New(
					pkgerrors.CodeInsufficientStock,
					fmt.Sprintf("Insufficient stock for product %s. Available stock: %d", product.Name, product.Stock),
				)
			}

			lineTotal := item.Quantity * product.PriceCents
			totalCents += lineTotal
			lineItems = append(lineItems, models.InvoiceLineItem{
				ID:             uuid.New(),
				ProductID:      item.ProductID,
				Position:       position,
				Quantity:       item.Quantity,
				UnitPriceCents: product.PriceCents,
				TotalCents:     lineTotal,
			})
		}

		invoice := &models.Invoice{
			ID:              uuid.New(),
			CustomerName:    strings.TrimSpace(input.CustomerName),
			SalespersonName: strings.TrimSpace(input.SalespersonName),
			Date:            input.Date,
			Notes:           input.Notes,
			TotalCents:      totalCents,
		}
		if err := repo.CreateInvoice(ctx, invoice); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist invoice")
		}
		for i := range lineItems {
			lineItems[i].InvoiceID = invoice.ID
		}
		if err := repo.CreateLineItems(ctx, lineItems); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist line items")
		}

		invoice.LineItems = lineItems
		created = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := newCreateInvoiceDTO(created, input.Items)
	return &dto, nil
}

// GetInvoice loads a single invoice by ID.
func (s *service) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.repo.FindInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Invoice with ID %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	dto := newInvoiceDTO(invoice)
	return &dto, nil
}

// ListInvoices returns every stored invoice.
func (s *service) ListInvoices(ctx context.Context) ([]InvoiceDTO, error) {
	rows, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return newInvoiceDTOs(rows), nil
}

func newCreateInvoiceDTO(invoice *models.Invoice, items []InvoiceItemInput) CreateInvoiceDTO {
	echoed := make([]CreatedItemDTO, 0, len(items))
	for _, item := range items {
		echoed = append(echoed, CreatedItemDTO{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return CreateInvoiceDTO{
		InvoiceID:       invoice.ID,
		CustomerName:    invoice.CustomerName,
		SalespersonName: invoice.SalespersonName,
		Total:           centsToAmount(invoice.TotalCents),
		Date:            invoice.Date.Format(dateLayout),
		Notes:           invoice.Notes,
		Product:         echoed,
	}
}

func validateInvoiceInput(input CreateInvoiceInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.SalespersonName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "salesperson name is required")
	}
	if input.Date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invoice date is required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one product is required")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}
	return nil
}
