package service

import (
	"context"
	"testing"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopRenderer struct{}

func (nopRenderer) Render(b *model.Bill) (string, error) { return "/tmp/invoice_" + b.BillNumber + ".pdf", nil }

func billingFixture(t *testing.T) (BillingService, *stubBillRepo, *stubMedicineRepo, *stubCustomerRepo, *model.Medicine, *model.Medicine) {
	t.Helper()
	paracetamol := &model.Medicine{
		Name: "Paracetamol", BatchNo: "B001", Quantity: 100,
		Price: dec("2.50"), ExpiryDate: "2027-12-31", Category: "Analgesic", ReorderLevel: 50,
	}
	ibuprofen := &model.Medicine{
		Name: "Ibuprofen", BatchNo: "B002", Quantity: 5,
		Price: dec("4.00"), ExpiryDate: "2027-06-30", Category: "Analgesic", ReorderLevel: 20,
	}
	billRepo := newStubBillRepo()
	medicineRepo := newStubMedicineRepo(paracetamol, ibuprofen)
	customerRepo := newStubCustomerRepo()
	svc := NewBillingService(billRepo, medicineRepo, customerRepo, nopRenderer{}, dec("18"))
	return svc, billRepo, medicineRepo, customerRepo, paracetamol, ibuprofen
}

func TestBillingCreate(t *testing.T) {
	svc, _, medicineRepo, _, paracetamol, _ := billingFixture(t)

	resp, err := svc.Create(context.Background(), dto.CreateBillRequest{
		BillNumber:   "BILL-001",
		CustomerName: "Ravi",
		PaymentMode:  "Cash",
		Items:        []dto.BillItemRequest{{MedicineID: paracetamol.ID.String(), Quantity: 4}},
	})
	require.NoError(t, err)

	// 4 × 2.50 = 10.00, GST 18% = 1.80
	assert.True(t, resp.Subtotal.Equal(dec("10.00")), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.GSTAmount.Equal(dec("1.80")), "gst %s", resp.GSTAmount)
	assert.True(t, resp.GrandTotal.Equal(dec("11.80")), "grand %s", resp.GrandTotal)

	m, _ := medicineRepo.FindByID(context.Background(), paracetamol.ID)
	assert.Equal(t, 96, m.Quantity)
}

func TestBillingCreateInsufficientStock(t *testing.T) {
	svc, _, medicineRepo, _, paracetamol, ibuprofen := billingFixture(t)

	_, err := svc.Create(context.Background(), dto.CreateBillRequest{
		BillNumber:   "BILL-002",
		CustomerName: "Ravi",
		PaymentMode:  "Cash",
		Items: []dto.BillItemRequest{
			{MedicineID: paracetamol.ID.String(), Quantity: 4},
			{MedicineID: ibuprofen.ID.String(), Quantity: 50}, // only 5 in stock
		},
	})
	assert.ErrorIs(t, err, apierror.ErrInsufficientStock)

	// Pre-flight validation rejects the bill before any decrement.
	p, _ := medicineRepo.FindByID(context.Background(), paracetamol.ID)
	i, _ := medicineRepo.FindByID(context.Background(), ibuprofen.ID)
	assert.Equal(t, 100, p.Quantity)
	assert.Equal(t, 5, i.Quantity)
}

func TestBillingDeleteRestoresStock(t *testing.T) {
	svc, _, medicineRepo, _, paracetamol, _ := billingFixture(t)

	resp, err := svc.Create(context.Background(), dto.CreateBillRequest{
		BillNumber:   "BILL-003",
		CustomerName: "Ravi",
		PaymentMode:  "UPI",
		Items:        []dto.BillItemRequest{{MedicineID: paracetamol.ID.String(), Quantity: 10}},
	})
	require.NoError(t, err)

	m, _ := medicineRepo.FindByID(context.Background(), paracetamol.ID)
	require.Equal(t, 90, m.Quantity)

	require.NoError(t, svc.Delete(context.Background(), uuid.MustParse(resp.ID)))

	// Create followed by delete is a net no-op on stock.
	m, _ = medicineRepo.FindByID(context.Background(), paracetamol.ID)
	assert.Equal(t, 100, m.Quantity)
}

func TestBillingCreateUnknownMedicine(t *testing.T) {
	svc, _, _, _, _, _ := billingFixture(t)

	_, err := svc.Create(context.Background(), dto.CreateBillRequest{
		BillNumber:   "BILL-004",
		CustomerName: "Ravi",
		PaymentMode:  "Card",
		Items:        []dto.BillItemRequest{{MedicineID: uuid.NewString(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestBillingStats(t *testing.T) {
	svc, _, _, _, paracetamol, _ := billingFixture(t)

	for _, n := range []string{"S-1", "S-2"} {
		_, err := svc.Create(context.Background(), dto.CreateBillRequest{
			BillNumber:   n,
			CustomerName: "Ravi",
			PaymentMode:  "Cash",
			Items:        []dto.BillItemRequest{{MedicineID: paracetamol.ID.String(), Quantity: 4}},
		})
		require.NoError(t, err)
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalBills)
	assert.True(t, stats.TotalRevenue.Equal(dec("23.60")), "revenue %s", stats.TotalRevenue)
	assert.True(t, stats.AvgBillValue.Equal(dec("11.80")), "avg %s", stats.AvgBillValue)
}
