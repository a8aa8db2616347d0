package dto

import "github.com/shopspring/decimal"

// ─── Filters ─────────────────────────────────────────────────────────────────

type SalesReportFilter struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Period    string `form:"period,default=monthly" validate:"omitempty,oneof=daily weekly monthly yearly"`
}

type InventoryReportFilter struct {
	Category string `form:"category"`
}

type CustomerReportFilter struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
}

// ─── Sales report ────────────────────────────────────────────────────────────

type SalesReportSummary struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalSubtotal   decimal.Decimal `json:"total_subtotal"`
	TotalGST        decimal.Decimal `json:"total_gst"`
	TotalSales      int             `json:"total_sales"`
	TotalBills      int             `json:"total_bills"`
	AvgBillValue    decimal.Decimal `json:"avg_bill_value"`
	AvgItemsPerBill float64         `json:"avg_items_per_bill"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	Period          string          `json:"period"`
}

type CategorySalesRow struct {
	Category      string          `json:"category"`
	TotalSales    int             `json:"total_sales"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

type TopMedicineRow struct {
	MedicineID    string          `json:"medicine_id"`
	MedicineName  string          `json:"medicine_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	SalesCount    int             `json:"sales_count"`
}

type PaymentModeRow struct {
	PaymentMode string          `json:"payment_mode"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type TrendPoint struct {
	Date         string          `json:"date"`
	Label        string          `json:"label"`
	SalesCount   int             `json:"sales_count"`
	BillsCount   int             `json:"bills_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	QuantitySold int             `json:"quantity_sold"`
}

type SalesReportResponse struct {
	Summary          SalesReportSummary `json:"summary"`
	CategoryAnalysis []CategorySalesRow `json:"category_analysis"`
	TopMedicines     []TopMedicineRow   `json:"top_medicines"`
	PaymentAnalysis  []PaymentModeRow   `json:"payment_analysis"`
	Trends           []TrendPoint       `json:"trends"`
}

// ─── Inventory report ────────────────────────────────────────────────────────

type InventoryReportSummary struct {
	TotalMedicines   int             `json:"total_medicines"`
	TotalStockValue  decimal.Decimal `json:"total_stock_value"`
	ExpiredCount     int             `json:"expired_count"`
	ExpiringSoonCount int            `json:"expiring_soon_count"`
	LowStockCount    int             `json:"low_stock_count"`
	OutOfStockCount  int             `json:"out_of_stock_count"`
	FastMovingCount  int             `json:"fast_moving_count"`
	SlowMovingCount  int             `json:"slow_moving_count"`
}

type CategoryValuationRow struct {
	Category      string          `json:"category"`
	TotalItems    int             `json:"total_items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

type ExpiredItemRow struct {
	MedicineID  string          `json:"medicine_id"`
	Name        string          `json:"name"`
	BatchNo     string          `json:"batch_no"`
	Quantity    int             `json:"quantity"`
	ExpiryDate  string          `json:"expiry_date"`
	DaysExpired int             `json:"days_expired"`
	ValueLoss   decimal.Decimal `json:"value_loss"`
}

type ExpiringSoonRow struct {
	MedicineID   string          `json:"medicine_id"`
	Name         string          `json:"name"`
	BatchNo      string          `json:"batch_no"`
	Quantity     int             `json:"quantity"`
	ExpiryDate   string          `json:"expiry_date"`
	DaysToExpiry int             `json:"days_to_expiry"`
	Value        decimal.Decimal `json:"value"`
}

type LowStockRow struct {
	MedicineID   string          `json:"medicine_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	Shortage     int             `json:"shortage"`
	Value        decimal.Decimal `json:"value"`
}

type OutOfStockRow struct {
	MedicineID   string          `json:"medicine_id"`
	Name         string          `json:"name"`
	ReorderLevel int             `json:"reorder_level"`
	LastPrice    decimal.Decimal `json:"last_price"`
}

type MovementRow struct {
	MedicineID     string          `json:"medicine_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Quantity       int             `json:"quantity"`
	SoldLast30Days int             `json:"sold_last_30_days"`
	SalesCount     int             `json:"sales_count"`
	TurnoverRatio  float64         `json:"turnover_ratio"`
	Value          decimal.Decimal `json:"value"`
}

type ReorderSuggestionRow struct {
	LowStockRow
	Priority          string `json:"priority"` // High | Medium
	SuggestedQuantity int    `json:"suggested_quantity"`
}

type InventoryReportResponse struct {
	Summary            InventoryReportSummary `json:"summary"`
	StockValuation     []CategoryValuationRow `json:"stock_valuation"`
	ExpiredItems       []ExpiredItemRow       `json:"expired_items"`
	ExpiringSoon       []ExpiringSoonRow      `json:"expiring_soon"`
	LowStockItems      []LowStockRow          `json:"low_stock_items"`
	OutOfStock         []OutOfStockRow        `json:"out_of_stock"`
	FastMoving         []MovementRow          `json:"fast_moving"`
	SlowMoving         []MovementRow          `json:"slow_moving"`
	ReorderSuggestions []ReorderSuggestionRow `json:"reorder_suggestions"`
}

// ─── Customer report ─────────────────────────────────────────────────────────

type CustomerReportSummary struct {
	TotalCustomers         int             `json:"total_customers"`
	NewCustomers           int             `json:"new_customers"`
	ReturningCustomers     int             `json:"returning_customers"`
	CustomersWithPurchases int             `json:"customers_with_purchases"`
	RetentionRate          float64         `json:"retention_rate"`
	TotalRevenue           decimal.Decimal `json:"total_revenue"`
	AvgCustomerValue       decimal.Decimal `json:"avg_customer_value"`
	StartDate              string          `json:"start_date"`
	EndDate                string          `json:"end_date"`
}

type CustomerPurchaseRow struct {
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
	TotalPurchases int             `json:"total_purchases"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	BillsCount     int             `json:"bills_count"`
	AvgBillValue   decimal.Decimal `json:"avg_bill_value"`
	LastPurchase   string          `json:"last_purchase"`
}

type NewCustomerRow struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

type CustomerReportResponse struct {
	Summary              CustomerReportSummary `json:"summary"`
	TopCustomers         []CustomerPurchaseRow `json:"top_customers"`
	NewCustomers         []NewCustomerRow      `json:"new_customers"`
	PurchaseFrequency    map[string]int        `json:"purchase_frequency"`
	AllCustomerPurchases []CustomerPurchaseRow `json:"all_customer_purchases"`
}
