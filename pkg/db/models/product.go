package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry with its current stock level. Prices are stored
// as integer cents.
type Product struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Stock      int       `gorm:"column:stock;not null;default:0"`
	PriceCents int       `gorm:"column:price_cents;not null"`
	Image      *string   `gorm:"column:image"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
