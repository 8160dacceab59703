package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rendypratama/invoicehub-backend/pkg/db/models"
	pkgerrors "github.com/rendypratama/invoicehub-backend/pkg/errors"
	"gorm.io/gorm"
)

// BlobStore persists uploaded product images and hands back a public
// reference that can be served over HTTP.
type BlobStore interface {
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// ImageUpload carries an incoming product image.
type ImageUpload struct {
	FileName string
	Content  io.Reader
}

// CreateProductInput carries a validated product creation request.
type CreateProductInput struct {
	Name       string
	Stock      int
	PriceCents int
	Image      *ImageUpload
}

// Service exposes catalog operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	SearchProducts(ctx context.Context, prefix string) ([]ProductDTO, error)
}

type service struct {
	repo  *Repository
	blobs BlobStore
}

// NewService builds a catalog service.
func NewService(repo *Repository, blobs BlobStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog: repository is required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("catalog: blob store is required")
	}
	return &service{repo: repo, blobs: blobs}, nil
}

// CreateProduct stores the image (when present) and persists the product.
// The image upload happens before field validation, so a stored blob is
// removed again whenever the product itself cannot be created.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	var imageRef *string
	if input.Image != nil {
		ref, err := s.blobs.Save(ctx, input.Image.FileName, input.Image.Content)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUpload, err, "store product image")
		}
		imageRef = &ref
	}

	if err := validateProductInput(input); err != nil {
		s.discardImage(ctx, imageRef)
		return nil, err
	}

	product := &models.Product{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(input.Name),
		Stock:      input.Stock,
		PriceCents: input.PriceCents,
		Image:      imageRef,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		s.discardImage(ctx, imageRef)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist product")
	}

	dto := newProductDTO(product)
	return &dto, nil
}

// GetProduct loads a single product by ID.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Product with ID %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := newProductDTO(product)
	return &dto, nil
}

// ListProducts returns the whole catalog.
func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return newProductDTOs(products), nil
}

// SearchProducts performs a case-insensitive prefix search on product names.
func (s *service) SearchProducts(ctx context.Context, prefix string) ([]ProductDTO, error) {
	products, err := s.repo.SearchByNamePrefix(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return newProductDTOs(products), nil
}

func (s *service) discardImage(ctx context.Context, ref *string) {
	if ref == nil {
		return
	}
	// Cleanup failures are swallowed: the product error is what the
	// caller needs to see, and an orphaned file is harmless.
	_ = s.blobs.Delete(ctx, *ref)
}

func validateProductInput(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	if input.PriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	return nil
}
