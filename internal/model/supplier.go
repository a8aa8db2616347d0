package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier is a goods provider. TotalOrders and TotalAmount are aggregate
// counters owned by the purchase-order workflow; clients never write them
// directly. A supplier with at least one purchase order is soft-deleted
// (Active=false), never hard-deleted.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Rating        int             `gorm:"not null;default:0"`
	TotalOrders   int             `gorm:"not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
