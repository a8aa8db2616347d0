package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer holds contact data plus purchase aggregates.
// Phone is the customer-facing unique key.
type Customer struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `gorm:"index;not null"`
	Email            *string
	Phone            string `gorm:"uniqueIndex;not null"`
	Address          *string
	TotalPurchases   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LastPurchaseDate *string         `gorm:"type:varchar(10)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
