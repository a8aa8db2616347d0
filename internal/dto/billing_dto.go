package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type BillItemRequest struct {
	MedicineID string `json:"medicine_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"    validate:"required,min=1"`
}

type CreateBillRequest struct {
	BillNumber     string            `json:"bill_number"     validate:"required"`
	CustomerName   string            `json:"customer_name"   validate:"required,min=1"`
	CustomerPhone  *string           `json:"customer_phone"`
	CustomerGSTIN  *string           `json:"customer_gstin"`
	BillingAddress *string           `json:"billing_address"`
	PaymentMode    string            `json:"payment_mode"    validate:"required,oneof=Cash Card UPI"`
	Items          []BillItemRequest `json:"items"           validate:"required,min=1,dive"`
	// GSTPercentage defaults to the configured rate when zero.
	GSTPercentage decimal.Decimal `json:"gst_percentage" validate:"omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BillItemResponse struct {
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type BillResponse struct {
	ID             string             `json:"id"`
	BillNumber     string             `json:"bill_number"`
	CustomerName   string             `json:"customer_name"`
	CustomerPhone  *string            `json:"customer_phone,omitempty"`
	CustomerGSTIN  *string            `json:"customer_gstin,omitempty"`
	BillingAddress *string            `json:"billing_address,omitempty"`
	PaymentMode    string             `json:"payment_mode"`
	Items          []BillItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	GSTPercentage  decimal.Decimal    `json:"gst_percentage"`
	GSTAmount      decimal.Decimal    `json:"gst_amount"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	CreatedAt      string             `json:"created_at"`
}

type BillStatsResponse struct {
	TotalBills   int64           `json:"total_bills"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AvgBillValue decimal.Decimal `json:"avg_bill_value"`
}
