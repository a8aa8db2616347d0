package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine is a stocked inventory item. Quantity is mutated by sales, bills
// and purchase-order receipts and must never go negative; every mutation
// path checks availability before decrementing.
//
// ExpiryDate is kept as a YYYY-MM-DD string rather than a DATE column:
// legacy rows carry free-text dates, and the notification generator is
// required to skip (not abort on) unparseable values.
type Medicine struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"index;not null"`
	BatchNo      string    `gorm:"not null"`
	Quantity     int       `gorm:"not null;default:0"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ExpiryDate   string    `gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Category     string    `gorm:"index;not null"`
	ReorderLevel int       `gorm:"not null;default:50"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
