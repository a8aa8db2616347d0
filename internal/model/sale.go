package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a single-medicine sale record. Immutable once created; the medicine
// name and price are denormalized so reports survive catalog edits.
type Sale struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicineID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineName string    `gorm:"not null"`
	Quantity     int       `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaleDate     string    `gorm:"type:varchar(10);index;not null"` // YYYY-MM-DD
	UserEmail    *string
	CreatedAt    time.Time
}
