package service

import (
	"context"
	"testing"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryReportMovementClassification(t *testing.T) {
	fast := &model.Medicine{
		ID: uuid.New(), Name: "FastMover", BatchNo: "F1", Quantity: 10,
		Price: dec("2"), ExpiryDate: futureDate(365), Category: "A", ReorderLevel: 5,
	}
	slow := &model.Medicine{
		ID: uuid.New(), Name: "SlowMover", BatchNo: "S1", Quantity: 100,
		Price: dec("2"), ExpiryDate: futureDate(365), Category: "A", ReorderLevel: 5,
	}
	soldOut := &model.Medicine{
		ID: uuid.New(), Name: "SoldOut", BatchNo: "Z1", Quantity: 0,
		Price: dec("2"), ExpiryDate: futureDate(365), Category: "A", ReorderLevel: 5,
	}
	recent := time.Now().AddDate(0, 0, -5).Format("2006-01-02")
	saleRepo := &stubSaleRepo{sales: []model.Sale{
		// 6 sold against 10 on hand: turnover 0.6, right on the fast cutoff
		{MedicineID: fast.ID, MedicineName: fast.Name, Quantity: 6, Price: dec("2"), Total: dec("12"), SaleDate: recent},
		// 20 sold but nothing on hand: turnover 0, classified as neither
		{MedicineID: soldOut.ID, MedicineName: soldOut.Name, Quantity: 20, Price: dec("2"), Total: dec("40"), SaleDate: recent},
		// nothing sold against 100 on hand: turnover 0, slow
	}}

	svc := NewReportService(saleRepo, newStubBillRepo(), newStubMedicineRepo(fast, slow, soldOut), newStubCustomerRepo())
	resp, err := svc.InventoryReport(context.Background(), dto.InventoryReportFilter{})
	require.NoError(t, err)

	require.Len(t, resp.FastMoving, 1)
	assert.Equal(t, "FastMover", resp.FastMoving[0].Name)
	assert.InDelta(t, 0.6, resp.FastMoving[0].TurnoverRatio, 0.001)

	require.Len(t, resp.SlowMoving, 1)
	assert.Equal(t, "SlowMover", resp.SlowMoving[0].Name)
	assert.Equal(t, 1, resp.Summary.FastMovingCount)
	assert.Equal(t, 1, resp.Summary.SlowMovingCount)
}

func TestInventoryReportBuckets(t *testing.T) {
	expired := &model.Medicine{
		ID: uuid.New(), Name: "OldStock", BatchNo: "O1", Quantity: 10,
		Price: dec("3"), ExpiryDate: futureDate(-10), Category: "A", ReorderLevel: 5,
	}
	low := &model.Medicine{
		ID: uuid.New(), Name: "RunningOut", BatchNo: "R1", Quantity: 3,
		Price: dec("2"), ExpiryDate: futureDate(365), Category: "B", ReorderLevel: 10,
	}
	out := &model.Medicine{
		ID: uuid.New(), Name: "Gone", BatchNo: "G1", Quantity: 0,
		Price: dec("5"), ExpiryDate: futureDate(365), Category: "B", ReorderLevel: 10,
	}

	svc := NewReportService(&stubSaleRepo{}, newStubBillRepo(), newStubMedicineRepo(expired, low, out), newStubCustomerRepo())
	resp, err := svc.InventoryReport(context.Background(), dto.InventoryReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Summary.TotalMedicines)
	assert.Equal(t, 1, resp.Summary.ExpiredCount)
	assert.Equal(t, 1, resp.Summary.LowStockCount)
	assert.Equal(t, 1, resp.Summary.OutOfStockCount)

	require.Len(t, resp.ExpiredItems, 1)
	assert.Equal(t, 10, resp.ExpiredItems[0].DaysExpired)
	assert.True(t, resp.ExpiredItems[0].ValueLoss.Equal(dec("30")))

	// Low stock feeds the reorder suggestion list: refill to 2× reorder level.
	require.Len(t, resp.ReorderSuggestions, 1)
	assert.Equal(t, "RunningOut", resp.ReorderSuggestions[0].Name)
	assert.Equal(t, 20, resp.ReorderSuggestions[0].SuggestedQuantity)
	assert.Equal(t, "Medium", resp.ReorderSuggestions[0].Priority)
}

func TestInventoryReportLowStockIsStrict(t *testing.T) {
	atLevel := &model.Medicine{
		ID: uuid.New(), Name: "OnTheLine", BatchNo: "L1", Quantity: 10,
		Price: dec("2"), ExpiryDate: futureDate(365), Category: "A", ReorderLevel: 10,
	}
	below := &model.Medicine{
		ID: uuid.New(), Name: "Below", BatchNo: "L2", Quantity: 9,
		Price: dec("2"), ExpiryDate: futureDate(365), Category: "A", ReorderLevel: 10,
	}

	svc := NewReportService(&stubSaleRepo{}, newStubBillRepo(), newStubMedicineRepo(atLevel, below), newStubCustomerRepo())
	resp, err := svc.InventoryReport(context.Background(), dto.InventoryReportFilter{})
	require.NoError(t, err)

	// Quantity equal to the reorder level is not low stock.
	assert.Equal(t, 1, resp.Summary.LowStockCount)
	require.Len(t, resp.LowStockItems, 1)
	assert.Equal(t, "Below", resp.LowStockItems[0].Name)
	require.Len(t, resp.ReorderSuggestions, 1)
	assert.Equal(t, 20, resp.ReorderSuggestions[0].SuggestedQuantity)
}

func TestSalesReportSummary(t *testing.T) {
	med := &model.Medicine{
		ID: uuid.New(), Name: "Paracetamol", BatchNo: "P1", Quantity: 50,
		Price: dec("2.50"), ExpiryDate: futureDate(365), Category: "Analgesic", ReorderLevel: 10,
	}
	today := time.Now().Format("2006-01-02")
	saleRepo := &stubSaleRepo{sales: []model.Sale{
		{MedicineID: med.ID, MedicineName: med.Name, Quantity: 4, Price: dec("2.50"), Total: dec("10.00"), SaleDate: today},
		{MedicineID: med.ID, MedicineName: med.Name, Quantity: 2, Price: dec("2.50"), Total: dec("5.00"), SaleDate: today},
	}}
	billRepo := newStubBillRepo()
	require.NoError(t, billRepo.Create(context.Background(), nil, &model.Bill{
		BillNumber: "B-1", CustomerName: "Ravi", PaymentMode: "Cash",
		Subtotal: dec("15.00"), GSTPercentage: dec("18"), GSTAmount: dec("2.70"), GrandTotal: dec("17.70"),
		Items: []model.BillItem{{MedicineID: med.ID, MedicineName: med.Name, Quantity: 6, Price: dec("2.50"), TotalPrice: dec("15.00")}},
	}))

	svc := NewReportService(saleRepo, billRepo, newStubMedicineRepo(med), newStubCustomerRepo())
	resp, err := svc.SalesReport(context.Background(), dto.SalesReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Summary.TotalSales)
	assert.Equal(t, 1, resp.Summary.TotalBills)
	assert.True(t, resp.Summary.TotalRevenue.Equal(dec("17.70")))
	assert.True(t, resp.Summary.TotalGST.Equal(dec("2.70")))

	require.Len(t, resp.CategoryAnalysis, 1)
	assert.Equal(t, "Analgesic", resp.CategoryAnalysis[0].Category)
	assert.Equal(t, 6, resp.CategoryAnalysis[0].TotalQuantity)

	require.Len(t, resp.TopMedicines, 1)
	assert.Equal(t, "Paracetamol", resp.TopMedicines[0].MedicineName)

	require.Len(t, resp.PaymentAnalysis, 1)
	assert.Equal(t, "Cash", resp.PaymentAnalysis[0].PaymentMode)
}

func TestCustomerReportSummary(t *testing.T) {
	phone := "9000012345"
	customerRepo := newStubCustomerRepo(&model.Customer{
		Name: "Ravi", Phone: phone, CreatedAt: time.Now().AddDate(0, 0, -5),
	})
	billRepo := newStubBillRepo()
	for _, n := range []string{"B-1", "B-2"} {
		require.NoError(t, billRepo.Create(context.Background(), nil, &model.Bill{
			BillNumber: n, CustomerName: "Ravi", CustomerPhone: &phone, PaymentMode: "Cash",
			Subtotal: dec("10"), GSTPercentage: dec("18"), GSTAmount: dec("1.80"), GrandTotal: dec("11.80"),
			Items: []model.BillItem{{MedicineID: uuid.New(), MedicineName: "X", Quantity: 2, Price: dec("5"), TotalPrice: dec("10")}},
		}))
	}

	svc := NewReportService(&stubSaleRepo{}, billRepo, newStubMedicineRepo(), customerRepo)
	resp, err := svc.CustomerReport(context.Background(), dto.CustomerReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Summary.TotalCustomers)
	assert.Equal(t, 1, resp.Summary.NewCustomers)
	assert.Equal(t, 1, resp.Summary.CustomersWithPurchases)
	assert.Equal(t, 1, resp.Summary.ReturningCustomers)
	assert.InDelta(t, 100.0, resp.Summary.RetentionRate, 0.001)
	assert.True(t, resp.Summary.TotalRevenue.Equal(dec("23.60")))

	require.Len(t, resp.TopCustomers, 1)
	assert.Equal(t, 2, resp.TopCustomers[0].BillsCount)
	assert.Equal(t, 1, resp.PurchaseFrequency["2-5_purchases"])
}
