package service

import (
	"context"
	"testing"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

// In-memory repository stubs. DB() returns nil, which puts runTx into
// pass-through mode, so service logic runs without a database.

// ─── medicines ───────────────────────────────────────────────────────────────

type stubMedicineRepo struct {
	medicines map[uuid.UUID]*model.Medicine
}

func newStubMedicineRepo(meds ...*model.Medicine) *stubMedicineRepo {
	r := &stubMedicineRepo{medicines: make(map[uuid.UUID]*model.Medicine)}
	for _, m := range meds {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		r.medicines[m.ID] = m
	}
	return r
}

func (r *stubMedicineRepo) Create(_ context.Context, m *model.Medicine) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.medicines[m.ID] = m
	return nil
}

func (r *stubMedicineRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Medicine, error) {
	m, ok := r.medicines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *stubMedicineRepo) List(_ context.Context, category string) ([]model.Medicine, error) {
	var out []model.Medicine
	for _, m := range r.medicines {
		if category == "" || m.Category == category {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMedicineRepo) Update(_ context.Context, m *model.Medicine) error {
	r.medicines[m.ID] = m
	return nil
}

func (r *stubMedicineRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.medicines[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.medicines, id)
	return nil
}

func (r *stubMedicineRepo) AdjustQuantityTx(_ *gorm.DB, id uuid.UUID, delta int) (bool, error) {
	m, ok := r.medicines[id]
	if !ok || m.Quantity+delta < 0 {
		return false, nil
	}
	m.Quantity += delta
	return true, nil
}

func (r *stubMedicineRepo) SetBatchNoTx(_ *gorm.DB, id uuid.UUID, batchNo string) error {
	if m, ok := r.medicines[id]; ok {
		m.BatchNo = batchNo
	}
	return nil
}

func (r *stubMedicineRepo) DB() *gorm.DB { return nil }

// ─── suppliers ───────────────────────────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo(suppliers ...*model.Supplier) *stubSupplierRepo {
	r := &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
	for _, s := range suppliers {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.suppliers[s.ID] = s
	}
	return r
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *stubSupplierRepo) List(_ context.Context, _ dto.SupplierFilter) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s, ok := r.suppliers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Active = false
	return nil
}

func (r *stubSupplierRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.suppliers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.suppliers, id)
	return nil
}

func (r *stubSupplierRepo) IncrementTotalsTx(_ *gorm.DB, id uuid.UUID, orders int, amount decimal.Decimal) error {
	s, ok := r.suppliers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.TotalOrders += orders
	s.TotalAmount = s.TotalAmount.Add(amount)
	return nil
}

// ─── purchase orders ─────────────────────────────────────────────────────────

type stubPORepo struct {
	orders map[uuid.UUID]*model.PurchaseOrder
	seq    int
}

func newStubPORepo(orders ...*model.PurchaseOrder) *stubPORepo {
	r := &stubPORepo{orders: make(map[uuid.UUID]*model.PurchaseOrder)}
	for _, po := range orders {
		if po.ID == uuid.Nil {
			po.ID = uuid.New()
		}
		r.orders[po.ID] = po
	}
	return r
}

func (r *stubPORepo) Create(_ context.Context, _ *gorm.DB, po *model.PurchaseOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	r.orders[po.ID] = po
	return nil
}

func (r *stubPORepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *po
	return &copied, nil
}

func (r *stubPORepo) List(_ context.Context, _ dto.PurchaseOrderFilter) ([]model.PurchaseOrder, error) {
	var out []model.PurchaseOrder
	for _, po := range r.orders {
		out = append(out, *po)
	}
	return out, nil
}

func (r *stubPORepo) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]model.PurchaseOrder, error) {
	var out []model.PurchaseOrder
	for _, po := range r.orders {
		if po.SupplierID == supplierID {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (r *stubPORepo) CountBySupplier(_ context.Context, supplierID uuid.UUID) (int64, error) {
	var n int64
	for _, po := range r.orders {
		if po.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *stubPORepo) UpdateFieldsTx(_ *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	po, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, val := range fields {
		switch key {
		case "status":
			po.Status = val.(model.POStatus)
		case "total_amount":
			po.TotalAmount = val.(decimal.Decimal)
		case "notes":
			s := val.(string)
			po.Notes = &s
		case "approved_by":
			s := val.(string)
			po.ApprovedBy = &s
		case "approved_at":
			t := val.(time.Time)
			po.ApprovedAt = &t
		case "approval_notes":
			po.ApprovalNotes = val.(*string)
		case "received_by":
			s := val.(string)
			po.ReceivedBy = &s
		case "received_at":
			t := val.(time.Time)
			po.ReceivedAt = &t
		case "receive_notes":
			po.ReceiveNotes = val.(*string)
		case "payment_status":
			s := val.(string)
			po.PaymentStatus = &s
		case "cancelled_by":
			s := val.(string)
			po.CancelledBy = &s
		case "cancelled_at":
			t := val.(time.Time)
			po.CancelledAt = &t
		case "cancellation_reason":
			s := val.(string)
			po.CancellationReason = &s
		}
	}
	return nil
}

func (r *stubPORepo) ReplaceItemsTx(_ *gorm.DB, id uuid.UUID, items []model.PurchaseOrderItem) error {
	po, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range items {
		items[i].PurchaseOrderID = id
	}
	po.Items = items
	return nil
}

func (r *stubPORepo) CreateReceivedItemsTx(_ *gorm.DB, items []model.PurchaseOrderReceived) error {
	for _, it := range items {
		po, ok := r.orders[it.PurchaseOrderID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		po.ReceivedItems = append(po.ReceivedItems, it)
	}
	return nil
}

func (r *stubPORepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *stubPORepo) NextSequence(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubPORepo) CountByStatus(_ context.Context) (map[model.POStatus]int64, error) {
	counts := make(map[model.POStatus]int64)
	for _, po := range r.orders {
		counts[po.Status]++
	}
	return counts, nil
}

func (r *stubPORepo) SumTotalAmount(_ context.Context, status model.POStatus) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, po := range r.orders {
		if po.Status == status {
			sum = sum.Add(po.TotalAmount)
		}
	}
	return sum, nil
}

func (r *stubPORepo) DB() *gorm.DB { return nil }

// ─── sales ───────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales []model.Sale
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.Sale, error) { return r.sales, nil }

func (r *stubSaleRepo) ListBetween(_ context.Context, start, end string) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.SaleDate >= start && s.SaleDate <= end {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListSince(_ context.Context, start string) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.SaleDate >= start {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) Count(_ context.Context) (int64, error) { return int64(len(r.sales)), nil }

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

// ─── bills ───────────────────────────────────────────────────────────────────

type stubBillRepo struct {
	bills map[uuid.UUID]*model.Bill
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{bills: make(map[uuid.UUID]*model.Bill)}
}

func (r *stubBillRepo) Create(_ context.Context, _ *gorm.DB, b *model.Bill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	r.bills[b.ID] = b
	return nil
}

func (r *stubBillRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *stubBillRepo) List(_ context.Context) ([]model.Bill, error) {
	var out []model.Bill
	for _, b := range r.bills {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBillRepo) ListBetween(_ context.Context, start, end string) ([]model.Bill, error) {
	var out []model.Bill
	for _, b := range r.bills {
		day := b.CreatedAt.Format("2006-01-02")
		if day >= start && day <= end {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBillRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.bills[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.bills, id)
	return nil
}

func (r *stubBillRepo) DB() *gorm.DB { return nil }

// ─── customers ───────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo(customers ...*model.Customer) *stubCustomerRepo {
	r := &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
	for _, c := range customers {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.customers[c.ID] = c
	}
	return r
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *stubCustomerRepo) FindByPhone(_ context.Context, phone string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			copied := *c
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, val := range fields {
		switch key {
		case "name":
			c.Name = val.(string)
		case "email":
			s := val.(string)
			c.Email = &s
		case "phone":
			c.Phone = val.(string)
		case "address":
			s := val.(string)
			c.Address = &s
		case "last_purchase_date":
			s := val.(string)
			c.LastPurchaseDate = &s
		}
	}
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.customers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

func (r *stubCustomerRepo) TopByPurchases(_ context.Context, limit int) ([]model.Customer, error) {
	out, _ := r.List(context.Background())
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ─── notifications ───────────────────────────────────────────────────────────

type stubNotificationRepo struct {
	notifications []model.Notification
}

func (r *stubNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *stubNotificationRepo) List(_ context.Context, filter dto.NotificationFilter) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.notifications {
		if filter.Read != nil && n.Read != *filter.Read {
			continue
		}
		if filter.Priority != "" && n.Priority != filter.Priority {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *stubNotificationRepo) ExistsSince(_ context.Context, alertType string, medicineID uuid.UUID, cutoff time.Time) (bool, error) {
	for _, n := range r.notifications {
		if n.Type == alertType && n.MedicineID == medicineID && n.CreatedAt.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context) (int64, error) {
	var n int64
	for _, notif := range r.notifications {
		if !notif.Read {
			n++
		}
	}
	return n, nil
}

func (r *stubNotificationRepo) CountUnreadBy(_ context.Context, column, value string) (int64, error) {
	var n int64
	for _, notif := range r.notifications {
		if notif.Read {
			continue
		}
		if (column == "priority" && notif.Priority == value) || (column == "type" && notif.Type == value) {
			n++
		}
	}
	return n, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].Read = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubNotificationRepo) MarkAllRead(_ context.Context) (int64, error) {
	var n int64
	for i := range r.notifications {
		if !r.notifications[i].Read {
			r.notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubNotificationRepo) DeleteRead(_ context.Context) (int64, error) {
	var kept []model.Notification
	var n int64
	for _, notif := range r.notifications {
		if notif.Read {
			n++
			continue
		}
		kept = append(kept, notif)
	}
	r.notifications = kept
	return n, nil
}

// ─── predictions ─────────────────────────────────────────────────────────────

type stubPredictionRepo struct {
	rows []model.Prediction
}

func (r *stubPredictionRepo) ReplaceAll(_ context.Context, preds []model.Prediction) error {
	r.rows = preds
	return nil
}

func (r *stubPredictionRepo) ListLatest(_ context.Context) ([]model.Prediction, error) {
	return r.rows, nil
}

// ─── users ───────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.Email] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

// ─── queue / denylist ────────────────────────────────────────────────────────

type stubQueue struct {
	tasks []worker.Task
}

func (q *stubQueue) Enqueue(_ context.Context, task worker.Task) error {
	q.tasks = append(q.tasks, task)
	return nil
}

type stubDenylist struct {
	revoked map[string]bool
}

func newStubDenylist() *stubDenylist { return &stubDenylist{revoked: make(map[string]bool)} }

func (d *stubDenylist) Revoke(_ context.Context, token string, _ time.Duration) error {
	d.revoked[token] = true
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	return d.revoked[token], nil
}
