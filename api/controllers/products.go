package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rendypratama/invoicehub-backend/api/responses"
	"github.com/rendypratama/invoicehub-backend/api/validators"
	"github.com/rendypratama/invoicehub-backend/internal/catalog"
	"github.com/rendypratama/invoicehub-backend/pkg/config"
	pkgerrors "github.com/rendypratama/invoicehub-backend/pkg/errors"
	"github.com/rendypratama/invoicehub-backend/pkg/logger"
)

// CreateProduct handles POST /api/products. The request is multipart form
// data with name, stock, price fields and an optional image file.
func CreateProduct(svc catalog.Service, uploads config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(uploads.MaxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUpload, err, "parse multipart form"))
			return
		}

		name, err := validators.RequireFormString("name", r.FormValue("name"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		stock, err := validators.ParseFormInt("stock", r.FormValue("stock"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceCents, err := validators.ParseFormPriceCents("price", r.FormValue("price"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.CreateProductInput{
			Name:       name,
			Stock:      stock,
			PriceCents: priceCents,
		}

		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			defer file.Close()
			input.Image = &catalog.ImageUpload{FileName: header.Filename, Content: file}
		case errors.Is(err, http.ErrMissingFile):
			// Image is optional.
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUpload, err, "read image field"))
			return
		}

		created, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logCtx := logg.WithProductID(r.Context(), created.ProductID.String())
		logg.Info(logCtx, "product created")
		responses.WriteSuccessStatus(w, http.StatusCreated, "Product created successfully", created)
	}
}

// ListProducts handles GET /api/products.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// SearchProducts handles GET /api/products/search?query=<prefix>.
func SearchProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.SearchProducts(r.Context(), r.URL.Query().Get("query"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// GetProduct handles GET /api/products/{productId}.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a valid UUID"))
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
