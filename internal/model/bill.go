package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill is a multi-item GST invoice. Immutable once created; deleting a bill
// restores each line's quantity back onto the medicine record (the exact
// inverse of create).
type Bill struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillNumber     string    `gorm:"uniqueIndex;not null"`
	CustomerName   string    `gorm:"not null"`
	CustomerPhone  *string
	CustomerGSTIN  *string `gorm:"column:customer_gstin"`
	BillingAddress *string
	PaymentMode    string          `gorm:"not null"` // Cash | Card | UPI
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTPercentage  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18;column:gst_percentage"`
	GSTAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;column:gst_amount"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []BillItem `gorm:"foreignKey:BillID"`
}

// BillItem is one invoice line. TotalPrice = Quantity × Price, computed server side.
type BillItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID       uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineID   uuid.UUID `gorm:"type:uuid;not null"`
	MedicineName string    `gorm:"not null"`
	Quantity     int       `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
