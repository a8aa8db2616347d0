package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	defaultReportDays = 30
	topMedicineLimit  = 10
	topSpenderLimit   = 10
	movementWindow    = 30 // days of sales considered for turnover

	fastTurnover = 0.5
	slowTurnover = 0.1
)

// ReportService computes the three management reports. All aggregation runs
// in memory over repository lists: date columns are strings, so the math
// lives here rather than in SQL.
type ReportService interface {
	SalesReport(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error)
	InventoryReport(ctx context.Context, filter dto.InventoryReportFilter) (*dto.InventoryReportResponse, error)
	CustomerReport(ctx context.Context, filter dto.CustomerReportFilter) (*dto.CustomerReportResponse, error)
}

type reportService struct {
	saleRepo     repository.SaleRepository
	billRepo     repository.BillRepository
	medicineRepo repository.MedicineRepository
	customerRepo repository.CustomerRepository
}

func NewReportService(
	saleRepo repository.SaleRepository,
	billRepo repository.BillRepository,
	medicineRepo repository.MedicineRepository,
	customerRepo repository.CustomerRepository,
) ReportService {
	return &reportService{
		saleRepo:     saleRepo,
		billRepo:     billRepo,
		medicineRepo: medicineRepo,
		customerRepo: customerRepo,
	}
}

func reportRange(start, end string) (string, string) {
	if end == "" {
		end = time.Now().Format("2006-01-02")
	}
	if start == "" {
		start = time.Now().AddDate(0, 0, -defaultReportDays).Format("2006-01-02")
	}
	return start, end
}

// ── Sales report ─────────────────────────────────────────────────────────────

func (s *reportService) SalesReport(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error) {
	start, end := reportRange(filter.StartDate, filter.EndDate)
	period := filter.Period
	if period == "" {
		period = "monthly"
	}

	sales, err := s.saleRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	meds, err := s.medicineRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	categoryOf := make(map[string]string, len(meds))
	for i := range meds {
		categoryOf[meds[i].ID.String()] = meds[i].Category
	}

	// Summary
	summary := dto.SalesReportSummary{
		TotalRevenue:  decimal.Zero,
		TotalSubtotal: decimal.Zero,
		TotalGST:      decimal.Zero,
		TotalSales:    len(sales),
		TotalBills:    len(bills),
		AvgBillValue:  decimal.Zero,
		StartDate:     start,
		EndDate:       end,
		Period:        period,
	}
	var totalItems int
	for i := range bills {
		summary.TotalRevenue = summary.TotalRevenue.Add(bills[i].GrandTotal)
		summary.TotalSubtotal = summary.TotalSubtotal.Add(bills[i].Subtotal)
		summary.TotalGST = summary.TotalGST.Add(bills[i].GSTAmount)
		totalItems += len(bills[i].Items)
	}
	if len(bills) > 0 {
		summary.AvgBillValue = summary.TotalRevenue.Div(decimal.NewFromInt(int64(len(bills)))).Round(2)
		summary.AvgItemsPerBill = round2f(float64(totalItems) / float64(len(bills)))
	}

	// Category analysis
	byCategory := make(map[string]*dto.CategorySalesRow)
	var categoryOrder []string
	for i := range sales {
		cat := categoryOf[sales[i].MedicineID.String()]
		if cat == "" {
			cat = "Uncategorized"
		}
		row, ok := byCategory[cat]
		if !ok {
			row = &dto.CategorySalesRow{Category: cat, TotalRevenue: decimal.Zero}
			byCategory[cat] = row
			categoryOrder = append(categoryOrder, cat)
		}
		row.TotalSales++
		row.TotalQuantity += sales[i].Quantity
		row.TotalRevenue = row.TotalRevenue.Add(sales[i].Total)
	}
	categories := make([]dto.CategorySalesRow, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		categories = append(categories, *byCategory[cat])
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].TotalRevenue.GreaterThan(categories[j].TotalRevenue)
	})

	// Top medicines
	byMedicine := make(map[string]*dto.TopMedicineRow)
	var medicineOrder []string
	for i := range sales {
		id := sales[i].MedicineID.String()
		row, ok := byMedicine[id]
		if !ok {
			row = &dto.TopMedicineRow{
				MedicineID:   id,
				MedicineName: sales[i].MedicineName,
				TotalRevenue: decimal.Zero,
			}
			byMedicine[id] = row
			medicineOrder = append(medicineOrder, id)
		}
		row.TotalQuantity += sales[i].Quantity
		row.TotalRevenue = row.TotalRevenue.Add(sales[i].Total)
		row.SalesCount++
	}
	topMedicines := make([]dto.TopMedicineRow, 0, len(medicineOrder))
	for _, id := range medicineOrder {
		topMedicines = append(topMedicines, *byMedicine[id])
	}
	sort.SliceStable(topMedicines, func(i, j int) bool {
		return topMedicines[i].TotalRevenue.GreaterThan(topMedicines[j].TotalRevenue)
	})
	if len(topMedicines) > topMedicineLimit {
		topMedicines = topMedicines[:topMedicineLimit]
	}

	// Payment analysis
	byMode := make(map[string]*dto.PaymentModeRow)
	var modeOrder []string
	for i := range bills {
		row, ok := byMode[bills[i].PaymentMode]
		if !ok {
			row = &dto.PaymentModeRow{PaymentMode: bills[i].PaymentMode, TotalAmount: decimal.Zero}
			byMode[bills[i].PaymentMode] = row
			modeOrder = append(modeOrder, bills[i].PaymentMode)
		}
		row.Count++
		row.TotalAmount = row.TotalAmount.Add(bills[i].GrandTotal)
	}
	payments := make([]dto.PaymentModeRow, 0, len(modeOrder))
	for _, mode := range modeOrder {
		payments = append(payments, *byMode[mode])
	}

	return &dto.SalesReportResponse{
		Summary:          summary,
		CategoryAnalysis: categories,
		TopMedicines:     topMedicines,
		PaymentAnalysis:  payments,
		Trends:           buildTrends(sales, bills, period),
	}, nil
}

// buildTrends buckets sales and bills by period key in chronological order.
func buildTrends(sales []model.Sale, bills []model.Bill, period string) []dto.TrendPoint {
	buckets := make(map[string]*dto.TrendPoint)
	var keys []string

	bucket := func(key, label string) *dto.TrendPoint {
		point, ok := buckets[key]
		if !ok {
			point = &dto.TrendPoint{Date: key, Label: label, Revenue: decimal.Zero}
			buckets[key] = point
			keys = append(keys, key)
		}
		return point
	}

	for i := range sales {
		t, err := time.Parse("2006-01-02", sales[i].SaleDate)
		if err != nil {
			continue
		}
		key, label := periodKey(t, period)
		point := bucket(key, label)
		point.SalesCount++
		point.QuantitySold += sales[i].Quantity
	}
	for i := range bills {
		key, label := periodKey(bills[i].CreatedAt, period)
		point := bucket(key, label)
		point.BillsCount++
		point.Revenue = point.Revenue.Add(bills[i].GrandTotal)
	}

	sort.Strings(keys)
	trends := make([]dto.TrendPoint, 0, len(keys))
	for _, key := range keys {
		trends = append(trends, *buckets[key])
	}
	return trends
}

func periodKey(t time.Time, period string) (key, label string) {
	switch period {
	case "daily":
		key = t.Format("2006-01-02")
		return key, t.Format("Jan 02")
	case "weekly":
		year, week := t.ISOWeek()
		key = fmt.Sprintf("%04d-W%02d", year, week)
		return key, fmt.Sprintf("Week %d, %d", week, year)
	case "yearly":
		key = t.Format("2006")
		return key, key
	default: // monthly
		key = t.Format("2006-01")
		return key, t.Format("Jan 2006")
	}
}

// ── Inventory report ─────────────────────────────────────────────────────────

func (s *reportService) InventoryReport(ctx context.Context, filter dto.InventoryReportFilter) (*dto.InventoryReportResponse, error) {
	meds, err := s.medicineRepo.List(ctx, filter.Category)
	if err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -movementWindow).Format("2006-01-02")
	recentSales, err := s.saleRepo.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	soldByMedicine := make(map[string]int)
	salesCountByMedicine := make(map[string]int)
	for i := range recentSales {
		id := recentSales[i].MedicineID.String()
		soldByMedicine[id] += recentSales[i].Quantity
		salesCountByMedicine[id]++
	}

	resp := &dto.InventoryReportResponse{
		Summary:            dto.InventoryReportSummary{TotalStockValue: decimal.Zero},
		StockValuation:     []dto.CategoryValuationRow{},
		ExpiredItems:       []dto.ExpiredItemRow{},
		ExpiringSoon:       []dto.ExpiringSoonRow{},
		LowStockItems:      []dto.LowStockRow{},
		OutOfStock:         []dto.OutOfStockRow{},
		FastMoving:         []dto.MovementRow{},
		SlowMoving:         []dto.MovementRow{},
		ReorderSuggestions: []dto.ReorderSuggestionRow{},
	}
	resp.Summary.TotalMedicines = len(meds)

	byCategory := make(map[string]*dto.CategoryValuationRow)
	var categoryOrder []string
	fastIDs := make(map[string]bool)
	today := startOfDay(time.Now())

	for i := range meds {
		med := &meds[i]
		id := med.ID.String()
		value := med.Price.Mul(decimal.NewFromInt(int64(med.Quantity)))
		resp.Summary.TotalStockValue = resp.Summary.TotalStockValue.Add(value)

		row, ok := byCategory[med.Category]
		if !ok {
			row = &dto.CategoryValuationRow{Category: med.Category, TotalValue: decimal.Zero}
			byCategory[med.Category] = row
			categoryOrder = append(categoryOrder, med.Category)
		}
		row.TotalItems++
		row.TotalQuantity += med.Quantity
		row.TotalValue = row.TotalValue.Add(value)

		// Expiry buckets; rows with unparseable dates are skipped.
		if expiry, err := time.Parse("2006-01-02", med.ExpiryDate); err == nil {
			daysLeft := int(expiry.Sub(today).Hours() / 24)
			switch {
			case daysLeft < 0:
				resp.Summary.ExpiredCount++
				resp.ExpiredItems = append(resp.ExpiredItems, dto.ExpiredItemRow{
					MedicineID:  id,
					Name:        med.Name,
					BatchNo:     med.BatchNo,
					Quantity:    med.Quantity,
					ExpiryDate:  med.ExpiryDate,
					DaysExpired: -daysLeft,
					ValueLoss:   value,
				})
			case daysLeft <= expiringSoonDays:
				resp.Summary.ExpiringSoonCount++
				resp.ExpiringSoon = append(resp.ExpiringSoon, dto.ExpiringSoonRow{
					MedicineID:   id,
					Name:         med.Name,
					BatchNo:      med.BatchNo,
					Quantity:     med.Quantity,
					ExpiryDate:   med.ExpiryDate,
					DaysToExpiry: daysLeft,
					Value:        value,
				})
			}
		}

		// Stock buckets
		switch {
		case med.Quantity == 0:
			resp.Summary.OutOfStockCount++
			resp.OutOfStock = append(resp.OutOfStock, dto.OutOfStockRow{
				MedicineID:   id,
				Name:         med.Name,
				ReorderLevel: med.ReorderLevel,
				LastPrice:    med.Price,
			})
		case med.Quantity < med.ReorderLevel:
			resp.Summary.LowStockCount++
			resp.LowStockItems = append(resp.LowStockItems, dto.LowStockRow{
				MedicineID:   id,
				Name:         med.Name,
				Quantity:     med.Quantity,
				ReorderLevel: med.ReorderLevel,
				Shortage:     med.ReorderLevel - med.Quantity,
				Value:        value,
			})
		}

		// Movement classification over the last 30 days of sales.
		sold := soldByMedicine[id]
		ratio := turnoverRatio(med.Quantity, sold)
		movement := dto.MovementRow{
			MedicineID:     id,
			Name:           med.Name,
			Category:       med.Category,
			Quantity:       med.Quantity,
			SoldLast30Days: sold,
			SalesCount:     salesCountByMedicine[id],
			TurnoverRatio:  round2f(ratio),
			Value:          value,
		}
		switch {
		case ratio >= fastTurnover:
			resp.Summary.FastMovingCount++
			resp.FastMoving = append(resp.FastMoving, movement)
			fastIDs[id] = true
		case ratio < slowTurnover && med.Quantity > 0:
			resp.Summary.SlowMovingCount++
			resp.SlowMoving = append(resp.SlowMoving, movement)
		}
	}

	for _, cat := range categoryOrder {
		resp.StockValuation = append(resp.StockValuation, *byCategory[cat])
	}
	sort.SliceStable(resp.StockValuation, func(i, j int) bool {
		return resp.StockValuation[i].TotalValue.GreaterThan(resp.StockValuation[j].TotalValue)
	})

	// Reorder suggestions: every low-stock item, refilled to twice its
	// reorder level. Fast movers get priority.
	for _, low := range resp.LowStockItems {
		priority := "Medium"
		if fastIDs[low.MedicineID] {
			priority = "High"
		}
		resp.ReorderSuggestions = append(resp.ReorderSuggestions, dto.ReorderSuggestionRow{
			LowStockRow:       low,
			Priority:          priority,
			SuggestedQuantity: low.ReorderLevel * 2,
		})
	}
	sort.SliceStable(resp.ReorderSuggestions, func(i, j int) bool {
		if resp.ReorderSuggestions[i].Priority != resp.ReorderSuggestions[j].Priority {
			return resp.ReorderSuggestions[i].Priority == "High"
		}
		return resp.ReorderSuggestions[i].Shortage > resp.ReorderSuggestions[j].Shortage
	})

	return resp, nil
}

// turnoverRatio relates 30-day sales volume to what is on the shelf.
// A sold-out item scores 0 regardless of how fast it moved before.
func turnoverRatio(quantity, sold int) float64 {
	if quantity == 0 {
		return 0
	}
	return float64(sold) / float64(quantity)
}

// ── Customer report ──────────────────────────────────────────────────────────

func (s *reportService) CustomerReport(ctx context.Context, filter dto.CustomerReportFilter) (*dto.CustomerReportResponse, error) {
	start, end := reportRange(filter.StartDate, filter.EndDate)

	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	startT, _ := time.Parse("2006-01-02", start)
	endT, _ := time.Parse("2006-01-02", end)
	endT = endT.AddDate(0, 0, 1) // inclusive upper bound

	type agg struct {
		name         string
		phone        string
		totalSpent   decimal.Decimal
		billsCount   int
		quantity     int
		lastPurchase time.Time
	}
	byPhone := make(map[string]*agg)
	var phoneOrder []string
	for i := range bills {
		phone := ""
		if bills[i].CustomerPhone != nil {
			phone = *bills[i].CustomerPhone
		}
		key := phone
		if key == "" {
			key = "walk-in:" + bills[i].CustomerName
		}
		a, ok := byPhone[key]
		if !ok {
			a = &agg{name: bills[i].CustomerName, phone: phone, totalSpent: decimal.Zero}
			byPhone[key] = a
			phoneOrder = append(phoneOrder, key)
		}
		a.totalSpent = a.totalSpent.Add(bills[i].GrandTotal)
		a.billsCount++
		for _, it := range bills[i].Items {
			a.quantity += it.Quantity
		}
		if bills[i].CreatedAt.After(a.lastPurchase) {
			a.lastPurchase = bills[i].CreatedAt
		}
	}

	summary := dto.CustomerReportSummary{
		TotalCustomers:         len(customers),
		CustomersWithPurchases: len(byPhone),
		TotalRevenue:           decimal.Zero,
		StartDate:              start,
		EndDate:                end,
	}
	var newCustomers []dto.NewCustomerRow
	for i := range customers {
		if !customers[i].CreatedAt.Before(startT) && customers[i].CreatedAt.Before(endT) {
			summary.NewCustomers++
			email := ""
			if customers[i].Email != nil {
				email = *customers[i].Email
			}
			newCustomers = append(newCustomers, dto.NewCustomerRow{
				Name:      customers[i].Name,
				Email:     email,
				Phone:     customers[i].Phone,
				CreatedAt: customers[i].CreatedAt.Format(time.RFC3339),
			})
		}
	}

	frequency := map[string]int{
		"1_purchase":     0,
		"2-5_purchases":  0,
		"6-10_purchases": 0,
		"11+_purchases":  0,
	}
	rows := make([]dto.CustomerPurchaseRow, 0, len(phoneOrder))
	for _, key := range phoneOrder {
		a := byPhone[key]
		summary.TotalRevenue = summary.TotalRevenue.Add(a.totalSpent)
		if a.billsCount > 1 {
			summary.ReturningCustomers++
		}
		switch {
		case a.billsCount == 1:
			frequency["1_purchase"]++
		case a.billsCount <= 5:
			frequency["2-5_purchases"]++
		case a.billsCount <= 10:
			frequency["6-10_purchases"]++
		default:
			frequency["11+_purchases"]++
		}
		rows = append(rows, dto.CustomerPurchaseRow{
			CustomerName:   a.name,
			CustomerPhone:  a.phone,
			TotalPurchases: a.quantity,
			TotalSpent:     a.totalSpent,
			BillsCount:     a.billsCount,
			AvgBillValue:   a.totalSpent.Div(decimal.NewFromInt(int64(a.billsCount))).Round(2),
			LastPurchase:   a.lastPurchase.Format("2006-01-02"),
		})
	}
	if summary.CustomersWithPurchases > 0 {
		summary.RetentionRate = round2f(float64(summary.ReturningCustomers) / float64(summary.CustomersWithPurchases) * 100)
		summary.AvgCustomerValue = summary.TotalRevenue.Div(decimal.NewFromInt(int64(summary.CustomersWithPurchases))).Round(2)
	} else {
		summary.AvgCustomerValue = decimal.Zero
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalSpent.GreaterThan(rows[j].TotalSpent) })
	top := rows
	if len(top) > topSpenderLimit {
		top = top[:topSpenderLimit]
	}

	return &dto.CustomerReportResponse{
		Summary:              summary,
		TopCustomers:         top,
		NewCustomers:         newCustomers,
		PurchaseFrequency:    frequency,
		AllCustomerPurchases: rows,
	}, nil
}

func round2f(v float64) float64 {
	return math.Round(v*100) / 100
}
