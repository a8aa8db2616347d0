package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func poFixture(t *testing.T) (PurchaseOrderService, *stubPORepo, *stubSupplierRepo, *stubMedicineRepo, *model.Supplier, *model.Medicine) {
	t.Helper()
	supplier := &model.Supplier{Name: "MediSuppliers", Active: true, TotalAmount: decimal.Zero}
	medicine := &model.Medicine{
		Name: "Paracetamol", BatchNo: "B001", Quantity: 100,
		Price: dec("2.50"), ExpiryDate: "2027-12-31", Category: "Analgesic", ReorderLevel: 50,
	}
	poRepo := newStubPORepo()
	supplierRepo := newStubSupplierRepo(supplier)
	medicineRepo := newStubMedicineRepo(medicine)
	svc := NewPurchaseOrderService(poRepo, supplierRepo, medicineRepo)
	return svc, poRepo, supplierRepo, medicineRepo, supplier, medicine
}

func createPO(t *testing.T, svc PurchaseOrderService, supplierID, medicineID uuid.UUID, qty int, price string) *dto.PurchaseOrderResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID.String(),
		Items: []dto.POItemRequest{
			{MedicineID: medicineID.String(), Quantity: qty, UnitPrice: dec(price)},
		},
	})
	require.NoError(t, err)
	return resp
}

func TestPurchaseOrderCreate(t *testing.T) {
	svc, _, _, _, supplier, medicine := poFixture(t)

	resp := createPO(t, svc, supplier.ID, medicine.ID, 40, "2.50")

	assert.Equal(t, "pending", resp.Status)
	assert.True(t, strings.HasPrefix(resp.PONumber, "PO-"))
	assert.True(t, strings.HasSuffix(resp.PONumber, "-0001"))
	assert.Equal(t, "Paracetamol", resp.Items[0].MedicineName)
	// total = Σ quantity × unit price
	assert.True(t, resp.TotalAmount.Equal(dec("100.00")), "total %s", resp.TotalAmount)

	// Supplier order counter is bumped on creation; amount waits for receipt.
	assert.Equal(t, 1, supplier.TotalOrders)
	assert.True(t, supplier.TotalAmount.IsZero())
}

func TestPurchaseOrderCreateUnknownSupplier(t *testing.T) {
	svc, _, _, _, _, medicine := poFixture(t)

	_, err := svc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: uuid.NewString(),
		Items:      []dto.POItemRequest{{MedicineID: medicine.ID.String(), Quantity: 1, UnitPrice: dec("1")}},
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestPurchaseOrderSequenceIncrements(t *testing.T) {
	svc, _, _, _, supplier, medicine := poFixture(t)

	first := createPO(t, svc, supplier.ID, medicine.ID, 1, "1")
	second := createPO(t, svc, supplier.ID, medicine.ID, 1, "1")

	assert.NotEqual(t, first.PONumber, second.PONumber)
	assert.True(t, strings.HasSuffix(second.PONumber, "-0002"))
}

func TestPurchaseOrderApprove(t *testing.T) {
	svc, _, _, _, supplier, medicine := poFixture(t)
	created := createPO(t, svc, supplier.ID, medicine.ID, 10, "2.00")
	id := uuid.MustParse(created.ID)

	resp, err := svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "alice@pharmacy.test"})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "alice@pharmacy.test", *resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedAt)
}

func TestPurchaseOrderApproveNonPending(t *testing.T) {
	svc, _, _, _, supplier, medicine := poFixture(t)
	created := createPO(t, svc, supplier.ID, medicine.ID, 10, "2.00")
	id := uuid.MustParse(created.ID)

	_, err := svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "alice"})
	require.NoError(t, err)

	// Second approval must fail; the state machine is monotonic.
	_, err = svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "bob"})
	assert.ErrorIs(t, err, apierror.ErrInvalidState)
}

func TestPurchaseOrderReceivePendingFails(t *testing.T) {
	svc, _, _, medicineRepo, supplier, medicine := poFixture(t)
	created := createPO(t, svc, supplier.ID, medicine.ID, 10, "2.00")
	id := uuid.MustParse(created.ID)

	_, err := svc.Receive(context.Background(), id, dto.ReceivePurchaseOrderRequest{
		ItemsReceived: []dto.ReceivedItemRequest{{MedicineID: medicine.ID.String(), QuantityReceived: 10}},
		ReceivedBy:    "bob",
	})
	assert.ErrorIs(t, err, apierror.ErrInvalidState)

	// Stock must be untouched after the rejected receive.
	m, _ := medicineRepo.FindByID(context.Background(), medicine.ID)
	assert.Equal(t, 100, m.Quantity)
}

func TestPurchaseOrderReceive(t *testing.T) {
	svc, _, _, medicineRepo, supplier, medicine := poFixture(t)
	created := createPO(t, svc, supplier.ID, medicine.ID, 40, "2.50")
	id := uuid.MustParse(created.ID)

	_, err := svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "alice"})
	require.NoError(t, err)

	resp, err := svc.Receive(context.Background(), id, dto.ReceivePurchaseOrderRequest{
		ItemsReceived: []dto.ReceivedItemRequest{
			{MedicineID: medicine.ID.String(), QuantityReceived: 35, BatchNumber: "B777"},
		},
		ReceivedBy: "bob",
	})
	require.NoError(t, err)

	assert.Equal(t, "received", resp.Status)
	require.NotNil(t, resp.PaymentStatus)
	assert.Equal(t, "pending", *resp.PaymentStatus)

	// Received quantity lands on the shelf, batch number is updated.
	m, _ := medicineRepo.FindByID(context.Background(), medicine.ID)
	assert.Equal(t, 135, m.Quantity)
	assert.Equal(t, "B777", m.BatchNo)

	// Supplier credited with the ordered amount.
	assert.True(t, supplier.TotalAmount.Equal(dec("100.00")), "amount %s", supplier.TotalAmount)

	// As-received lines are stored verbatim.
	require.Len(t, resp.ItemsReceived, 1)
	assert.Equal(t, 35, resp.ItemsReceived[0].QuantityReceived)
}

func TestPurchaseOrderReceiveUnknownMedicineSkipped(t *testing.T) {
	svc, _, _, medicineRepo, supplier, medicine := poFixture(t)
	created := createPO(t, svc, supplier.ID, medicine.ID, 10, "2.00")
	id := uuid.MustParse(created.ID)
	_, err := svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "alice"})
	require.NoError(t, err)

	ghost := uuid.NewString()
	resp, err := svc.Receive(context.Background(), id, dto.ReceivePurchaseOrderRequest{
		ItemsReceived: []dto.ReceivedItemRequest{
			{MedicineID: medicine.ID.String(), QuantityReceived: 10},
			{MedicineID: ghost, QuantityReceived: 99},
		},
		ReceivedBy: "bob",
	})
	require.NoError(t, err)

	// The unknown line is recorded but does not move stock.
	assert.Len(t, resp.ItemsReceived, 2)
	m, _ := medicineRepo.FindByID(context.Background(), medicine.ID)
	assert.Equal(t, 110, m.Quantity)
}

func TestPurchaseOrderCancel(t *testing.T) {
	svc, _, _, _, supplier, medicine := poFixture(t)

	for _, approveFirst := range []bool{false, true} {
		created := createPO(t, svc, supplier.ID, medicine.ID, 5, "1.00")
		id := uuid.MustParse(created.ID)
		if approveFirst {
			_, err := svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "alice"})
			require.NoError(t, err)
		}
		resp, err := svc.Cancel(context.Background(), id, dto.CancelPurchaseOrderRequest{
			Reason: "supplier out of stock", CancelledBy: "alice",
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "supplier out of stock", *resp.CancellationReason)
	}
}

func TestPurchaseOrderCancelReceivedFails(t *testing.T) {
	svc, _, _, _, supplier, medicine := poFixture(t)
	created := createPO(t, svc, supplier.ID, medicine.ID, 5, "1.00")
	id := uuid.MustParse(created.ID)

	_, err := svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "alice"})
	require.NoError(t, err)
	_, err = svc.Receive(context.Background(), id, dto.ReceivePurchaseOrderRequest{
		ItemsReceived: []dto.ReceivedItemRequest{{MedicineID: medicine.ID.String(), QuantityReceived: 5}},
		ReceivedBy:    "bob",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), id, dto.CancelPurchaseOrderRequest{Reason: "changed mind", CancelledBy: "alice"})
	assert.ErrorIs(t, err, apierror.ErrInvalidState)
}

func TestPurchaseOrderUpdatePendingOnly(t *testing.T) {
	svc, _, _, _, supplier, medicine := poFixture(t)
	created := createPO(t, svc, supplier.ID, medicine.ID, 5, "1.00")
	id := uuid.MustParse(created.ID)

	resp, err := svc.Update(context.Background(), id, dto.UpdatePurchaseOrderRequest{
		Items: []dto.POItemRequest{{MedicineID: medicine.ID.String(), Quantity: 8, UnitPrice: dec("3.00")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(dec("24.00")), "total %s", resp.TotalAmount)

	_, err = svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "alice"})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), id, dto.UpdatePurchaseOrderRequest{
		Items: []dto.POItemRequest{{MedicineID: medicine.ID.String(), Quantity: 1, UnitPrice: dec("1.00")}},
	})
	assert.ErrorIs(t, err, apierror.ErrInvalidState)
}

func TestPurchaseOrderDeleteStates(t *testing.T) {
	svc, _, _, _, supplier, medicine := poFixture(t)
	created := createPO(t, svc, supplier.ID, medicine.ID, 5, "1.00")
	id := uuid.MustParse(created.ID)

	_, err := svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "alice"})
	require.NoError(t, err)
	err = svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, apierror.ErrInvalidState)

	_, err = svc.Cancel(context.Background(), id, dto.CancelPurchaseOrderRequest{Reason: "not needed", CancelledBy: "alice"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), id))

	_, err = svc.GetByID(context.Background(), id)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}

func TestPurchaseOrderStatistics(t *testing.T) {
	svc, _, _, _, supplier, medicine := poFixture(t)

	first := createPO(t, svc, supplier.ID, medicine.ID, 10, "2.00") // 20.00
	createPO(t, svc, supplier.ID, medicine.ID, 5, "1.00")

	id := uuid.MustParse(first.ID)
	_, err := svc.Approve(context.Background(), id, dto.ApprovePurchaseOrderRequest{ApprovedBy: "alice"})
	require.NoError(t, err)
	_, err = svc.Receive(context.Background(), id, dto.ReceivePurchaseOrderRequest{
		ItemsReceived: []dto.ReceivedItemRequest{{MedicineID: medicine.ID.String(), QuantityReceived: 10}},
		ReceivedBy:    "bob",
	})
	require.NoError(t, err)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPurchaseOrders)
	assert.Equal(t, int64(1), stats.ByStatus["pending"])
	assert.Equal(t, int64(1), stats.ByStatus["received"])
	assert.True(t, stats.TotalAmountReceived.Equal(dec("20.00")))
}
