package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type MedicineRequest struct {
	Name         string          `json:"name"          validate:"required,min=1"`
	BatchNo      string          `json:"batch_no"      validate:"required"`
	Quantity     int             `json:"quantity"      validate:"min=0"`
	Price        decimal.Decimal `json:"price"         validate:"required"`
	ExpiryDate   string          `json:"expiry_date"   validate:"required,datetime=2006-01-02"`
	Category     string          `json:"category"      validate:"required"`
	ReorderLevel int             `json:"reorder_level" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MedicineResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	BatchNo      string          `json:"batch_no"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	ExpiryDate   string          `json:"expiry_date"`
	Category     string          `json:"category"`
	ReorderLevel int             `json:"reorder_level"`
	CreatedAt    string          `json:"created_at"`
}

// ExpiringMedicineResponse adds the countdown used by GET /api/medicines/expiring.
type ExpiringMedicineResponse struct {
	MedicineResponse
	DaysUntilExpiry int `json:"days_until_expiry"`
}
