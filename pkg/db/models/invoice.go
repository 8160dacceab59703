package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is the header record for a completed sale. TotalCents is computed at
// creation time and the row is immutable afterwards.
type Invoice struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	SalespersonName string            `gorm:"column:salesperson_name;not null"`
	Date            time.Time         `gorm:"column:date;type:date;not null"`
	Notes           *string           `gorm:"column:notes"`
	TotalCents      int               `gorm:"column:total_cents;not null"`
	LineItems       []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
}
