package catalog

import (
	"github.com/google/uuid"
	"github.com/rendypratama/invoicehub-backend/pkg/db/models"
)

// ProductDTO is the outward-facing product shape. Prices are stored as
// integer cents and converted to a decimal amount at this boundary.
type ProductDTO struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Stock       int       `json:"stock"`
	Price       float64   `json:"price"`
	Image       *string   `json:"image"`
}

func newProductDTO(product *models.Product) ProductDTO {
	return ProductDTO{
		ProductID:   product.ID,
		ProductName: product.Name,
		Stock:       product.Stock,
		Price:       centsToAmount(product.PriceCents),
		Image:       product.Image,
	}
}

func newProductDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, newProductDTO(&products[i]))
	}
	return out
}

func centsToAmount(cents int) float64 {
	return float64(cents) / 100
}
