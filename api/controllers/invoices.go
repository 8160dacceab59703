package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rendypratama/invoicehub-backend/api/responses"
	"github.com/rendypratama/invoicehub-backend/api/validators"
	"github.com/rendypratama/invoicehub-backend/internal/invoices"
	pkgerrors "github.com/rendypratama/invoicehub-backend/pkg/errors"
	"github.com/rendypratama/invoicehub-backend/pkg/logger"
)

const invoiceDateLayout = "2006-01-02"

type createInvoiceRequest struct {
	CustomerName    string               `json:"customerName" validate:"required"`
	SalespersonName string               `json:"salespersonName" validate:"required"`
	Date            string               `json:"date" validate:"required,datetime=2006-01-02"`
	Notes           *string              `json:"notes"`
	Product         []invoiceItemRequest `json:"product" validate:"required,min=1,dive"`
}

type invoiceItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateInvoice handles POST /api/invoice.
func CreateInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createInvoiceRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateInvoice(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logCtx := logg.WithInvoiceID(r.Context(), created.InvoiceID.String())
		logg.Info(logCtx, "invoice created")
		responses.WriteSuccessStatus(w, http.StatusOK, "Invoice created successfully", created)
	}
}

// ListInvoices handles GET /api/invoice.
func ListInvoices(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListInvoices(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// GetInvoice handles GET /api/invoice/{invoiceId}.
func GetInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "invoiceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invoice id must be a valid UUID"))
			return
		}

		invoice, err := svc.GetInvoice(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoice)
	}
}

func (req createInvoiceRequest) toInput() (invoices.CreateInvoiceInput, error) {
	date, err := time.Parse(invoiceDateLayout, req.Date)
	if err != nil {
		return invoices.CreateInvoiceInput{}, pkgerrors.New(pkgerrors.CodeValidation, "date must use the YYYY-MM-DD format")
	}

	items := make([]invoices.InvoiceItemInput, 0, len(req.Product))
	for _, item := range req.Product {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return invoices.CreateInvoiceInput{}, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("productId %q must be a valid UUID", item.ProductID),
			)
		}
		items = append(items, invoices.InvoiceItemInput{ProductID: productID, Quantity: item.Quantity})
	}

	return invoices.CreateInvoiceInput{
		CustomerName:    req.CustomerName,
		SalespersonName: req.SalespersonName,
		Date:            date,
		Notes:           req.Notes,
		Items:           items,
	}, nil
}
