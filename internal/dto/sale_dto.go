package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSaleRequest struct {
	MedicineID string          `json:"medicine_id" validate:"required,uuid"`
	Quantity   int             `json:"quantity"    validate:"required,min=1"`
	Price      decimal.Decimal `json:"price"       validate:"required"`
	// SaleDate defaults to today when empty.
	SaleDate  string  `json:"sale_date"  validate:"omitempty,datetime=2006-01-02"`
	UserEmail *string `json:"user_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleResponse struct {
	ID           string          `json:"id"`
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Total        decimal.Decimal `json:"total"`
	SaleDate     string          `json:"sale_date"`
	UserEmail    *string         `json:"user_email,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

// SaleSummaryRow is one GET /api/sales/summary group (per medicine).
type SaleSummaryRow struct {
	MedicineName  string          `json:"medicine_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	Count         int             `json:"count"`
}
