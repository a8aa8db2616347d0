package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

type PurchaseOrderFilter struct {
	Status     string `form:"status"      validate:"omitempty,oneof=pending approved received cancelled"`
	SupplierID string `form:"supplier_id" validate:"omitempty,uuid"`
	StartDate  string `form:"start_date"  validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date"    validate:"omitempty,datetime=2006-01-02"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type POItemRequest struct {
	MedicineID string          `json:"medicine_id" validate:"required,uuid"`
	Quantity   int             `json:"quantity"    validate:"required,min=1"`
	UnitPrice  decimal.Decimal `json:"unit_price"  validate:"required"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID string          `json:"supplier_id" validate:"required,uuid"`
	Items      []POItemRequest `json:"items"       validate:"required,min=1,dive"`
	// OrderDate defaults to today when empty.
	OrderDate string  `json:"order_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes"`
}

// UpdatePurchaseOrderRequest replaces the line items of a pending order.
type UpdatePurchaseOrderRequest struct {
	Items []POItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Notes *string         `json:"notes"`
}

type ApprovePurchaseOrderRequest struct {
	ApprovedBy string  `json:"approved_by" validate:"required,min=1"`
	Notes      *string `json:"notes"`
}

type ReceivedItemRequest struct {
	MedicineID       string `json:"medicine_id"       validate:"required,uuid"`
	QuantityReceived int    `json:"quantity_received" validate:"min=0"`
	BatchNumber      string `json:"batch_number"`
}

type ReceivePurchaseOrderRequest struct {
	ItemsReceived []ReceivedItemRequest `json:"items_received" validate:"required,min=1,dive"`
	ReceivedBy    string                `json:"received_by"    validate:"required,min=1"`
	PaymentStatus string                `json:"payment_status" validate:"omitempty,oneof=pending paid partial"`
	Notes         *string               `json:"notes"`
}

type CancelPurchaseOrderRequest struct {
	Reason      string `json:"reason"       validate:"required,min=3"`
	CancelledBy string `json:"cancelled_by" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type POItemResponse struct {
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type ReceivedItemResponse struct {
	MedicineID       string `json:"medicine_id"`
	QuantityReceived int    `json:"quantity_received"`
	BatchNumber      string `json:"batch_number,omitempty"`
}

type PurchaseOrderResponse struct {
	ID              string                 `json:"id"`
	PONumber        string                 `json:"po_number"`
	SupplierID      string                 `json:"supplier_id"`
	SupplierName    string                 `json:"supplier_name"`
	SupplierContact string                 `json:"supplier_contact,omitempty"`
	OrderDate       string                 `json:"order_date"`
	Status          string                 `json:"status"`
	Items           []POItemResponse       `json:"items"`
	ItemsReceived   []ReceivedItemResponse `json:"items_received,omitempty"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	Notes           *string                `json:"notes,omitempty"`

	ApprovedBy         *string `json:"approved_by,omitempty"`
	ApprovedAt         *string `json:"approved_at,omitempty"`
	ApprovalNotes      *string `json:"approval_notes,omitempty"`
	ReceivedBy         *string `json:"received_by,omitempty"`
	ReceivedAt         *string `json:"received_at,omitempty"`
	ReceiveNotes       *string `json:"receive_notes,omitempty"`
	PaymentStatus      *string `json:"payment_status,omitempty"`
	CancelledBy        *string `json:"cancelled_by,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// POStatisticsResponse is GET /api/purchase-orders/summary/statistics.
type POStatisticsResponse struct {
	TotalPurchaseOrders int64            `json:"total_purchase_orders"`
	ByStatus            map[string]int64 `json:"by_status"`
	TotalAmountReceived decimal.Decimal  `json:"total_amount_received"`
}
