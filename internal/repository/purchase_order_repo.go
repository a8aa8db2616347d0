package repository

import (
	"context"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	// Create inserts the PO and its items inside the caller's transaction.
	Create(ctx context.Context, tx *gorm.DB, po *model.PurchaseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context, filter dto.PurchaseOrderFilter) ([]model.PurchaseOrder, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.PurchaseOrder, error)
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)

	// UpdateFieldsTx applies a partial update inside the caller's transaction.
	UpdateFieldsTx(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	// ReplaceItemsTx swaps the ordered line items of a pending order.
	ReplaceItemsTx(tx *gorm.DB, id uuid.UUID, items []model.PurchaseOrderItem) error
	// CreateReceivedItemsTx stores the as-received lines verbatim.
	CreateReceivedItemsTx(tx *gorm.DB, items []model.PurchaseOrderReceived) error
	Delete(ctx context.Context, id uuid.UUID) error

	// NextSequence returns the next value of the order-number sequence.
	// Backed by a PostgreSQL sequence so concurrent creates never collide.
	NextSequence(ctx context.Context, tx *gorm.DB) (int, error)

	CountByStatus(ctx context.Context) (map[model.POStatus]int64, error)
	SumTotalAmount(ctx context.Context, status model.POStatus) (decimal.Decimal, error)

	DB() *gorm.DB
}

type purchaseOrderRepo struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, tx *gorm.DB, po *model.PurchaseOrder) error {
	return tx.WithContext(ctx).Create(po).Error
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("ReceivedItems").
		Preload("Supplier").
		First(&po, "id = ?", id).Error
	return &po, err
}

func (r *purchaseOrderRepo) List(ctx context.Context, filter dto.PurchaseOrderFilter) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	q := r.db.WithContext(ctx).
		Preload("Items").
		Preload("ReceivedItems").
		Preload("Supplier").
		Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.StartDate != "" {
		q = q.Where("order_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("order_date <= ?", filter.EndDate)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("ReceivedItems").
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Where("supplier_id = ?", supplierID).Count(&n).Error
	return n, err
}

func (r *purchaseOrderRepo) UpdateFieldsTx(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	res := tx.Model(&model.PurchaseOrder{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *purchaseOrderRepo) ReplaceItemsTx(tx *gorm.DB, id uuid.UUID, items []model.PurchaseOrderItem) error {
	if err := tx.Delete(&model.PurchaseOrderItem{}, "purchase_order_id = ?", id).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].PurchaseOrderID = id
	}
	return tx.Create(&items).Error
}

func (r *purchaseOrderRepo) CreateReceivedItemsTx(tx *gorm.DB, items []model.PurchaseOrderReceived) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *purchaseOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PurchaseOrderItem{}, "purchase_order_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.PurchaseOrderReceived{}, "purchase_order_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.PurchaseOrder{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *purchaseOrderRepo) NextSequence(ctx context.Context, tx *gorm.DB) (int, error) {
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('purchase_orders_po_seq')").Scan(&num).Error
	return num, err
}

func (r *purchaseOrderRepo) CountByStatus(ctx context.Context) (map[model.POStatus]int64, error) {
	type row struct {
		Status model.POStatus
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Select("status, count(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.POStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}

func (r *purchaseOrderRepo) SumTotalAmount(ctx context.Context, status model.POStatus) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ?", status).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *purchaseOrderRepo) DB() *gorm.DB { return r.db }
