package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=1"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Phone   string  `json:"phone"   validate:"required,min=6"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest applies only the non-nil fields.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Phone   *string `json:"phone"   validate:"omitempty,min=6"`
	Address *string `json:"address"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CustomerResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Email            *string         `json:"email,omitempty"`
	Phone            string          `json:"phone"`
	Address          *string         `json:"address,omitempty"`
	TotalPurchases   decimal.Decimal `json:"total_purchases"`
	LastPurchaseDate *string         `json:"last_purchase_date,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

type CustomerStatsResponse struct {
	TotalCustomers int64              `json:"total_customers"`
	TopCustomers   []CustomerResponse `json:"top_customers"`
}
