package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceLineItem captures one product-quantity entry within an invoice.
// UnitPriceCents is the product's price snapshotted at sale time; later catalog
// price changes never alter it.
type InvoiceLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID      uuid.UUID `gorm:"column:invoice_id;type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Position       int       `gorm:"column:position;not null;default:0"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	TotalCents     int       `gorm:"column:total_cents;not null"`
	Product        *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
