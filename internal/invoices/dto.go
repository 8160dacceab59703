package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/rendypratama/invoicehub-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// CreateInvoiceInput carries a validated invoice creation request.
type CreateInvoiceInput struct {
	CustomerName    string
	SalespersonName string
	Date            time.Time
	Notes           *string
	Items           []InvoiceItemInput
}

// InvoiceItemInput is one requested invoice line.
type InvoiceItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreatedItemDTO echoes a requested line back to the caller.
type CreatedItemDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// CreateInvoiceDTO is the response shape for a freshly created invoice.
type CreateInvoiceDTO struct {
	InvoiceID       uuid.UUID        `json:"invoiceId"`
	CustomerName    string           `json:"customerName"`
	SalespersonName string           `json:"salespersonName"`
	Total           float64          `json:"total"`
	Date            string           `json:"date"`
	Notes           *string          `json:"notes"`
	Product         []CreatedItemDTO `json:"product"`
}

// InvoiceItemDTO is one line of a stored invoice, priced from the snapshot
// taken at creation time.
type InvoiceItemDTO struct {
	ProductID    uuid.UUID `json:"productId"`
	ProductPrice float64   `json:"productPrice"`
	Quantity     int       `json:"quantity"`
	Total        float64   `json:"total"`
	Image        *string   `json:"image"`
}

// InvoiceDTO is the read shape for a stored invoice.
type InvoiceDTO struct {
	ID              uuid.UUID        `json:"id"`
	CustomerName    string           `json:"customerName"`
	SalespersonName string           `json:"salespersonName"`
	Total           float64          `json:"total"`
	Date            string           `json:"date"`
	Notes           *string          `json:"notes"`
	Product         []InvoiceItemDTO `json:"product"`
}

// newInvoiceDTO maps a stored invoice. The total is recomputed from the line
// item snapshots so later catalog price edits can never change past invoices.
func newInvoiceDTO(invoice *models.Invoice) InvoiceDTO {
	items := make([]InvoiceItemDTO, 0, len(invoice.LineItems))
	totalCents := 0
	for i := range invoice.LineItems {
		li := &invoice.LineItems[i]
		var image *string
		if li.Product != nil {
			image = li.Product.Image
		}
		items = append(items, InvoiceItemDTO{
			ProductID:    li.ProductID,
			ProductPrice: centsToAmount(li.UnitPriceCents),
			Quantity:     li.Quantity,
			Total:        centsToAmount(li.TotalCents),
			Image:        image,
		})
		totalCents += li.TotalCents
	}
	return InvoiceDTO{
		ID:              invoice.ID,
		CustomerName:    invoice.CustomerName,
		SalespersonName: invoice.SalespersonName,
		Total:           centsToAmount(totalCents),
		Date:            invoice.Date.Format(dateLayout),
		Notes:           invoice.Notes,
		Product:         items,
	}
}

func newInvoiceDTOs(invoices []models.Invoice) []InvoiceDTO {
	out := make([]InvoiceDTO, 0, len(invoices))
	for i := range invoices {
		out = append(out, newInvoiceDTO(&invoices[i]))
	}
	return out
}

func centsToAmount(cents int) float64 {
	return float64(cents) / 100
}
