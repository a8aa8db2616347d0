package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

type SupplierFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SupplierRequest struct {
	Name          string  `json:"name"           validate:"required,min=2"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Rating        int     `json:"rating"         validate:"omitempty,min=0,max=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ContactPerson *string         `json:"contact_person,omitempty"`
	Email         *string         `json:"email,omitempty"`
	Phone         *string         `json:"phone,omitempty"`
	Address       *string         `json:"address,omitempty"`
	Rating        int             `json:"rating"`
	TotalOrders   int             `json:"total_orders"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Active        bool            `json:"active"`
	CreatedAt     string          `json:"created_at"`
}

// SupplierHistoryResponse is the /:id/history projection.
type SupplierHistoryResponse struct {
	Supplier       SupplierSummary         `json:"supplier"`
	Statistics     SupplierHistoryStats    `json:"statistics"`
	PurchaseOrders []PurchaseOrderResponse `json:"purchase_orders"`
}

type SupplierSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

type SupplierHistoryStats struct {
	TotalOrders     int             `json:"total_orders"`
	CompletedOrders int             `json:"completed_orders"`
	PendingOrders   int             `json:"pending_orders"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// SupplierStatsResponse is the /:id/stats aggregation grouped by PO status.
type SupplierStatsResponse struct {
	SupplierID   string                        `json:"supplier_id"`
	SupplierName string                        `json:"supplier_name"`
	ByStatus     map[string]SupplierStatusRow  `json:"by_status"`
	TotalOrders  int                           `json:"total_orders"`
	TotalAmount  decimal.Decimal               `json:"total_amount"`
}

type SupplierStatusRow struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}
