package repository

import (
	"context"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	List(ctx context.Context, filter dto.SupplierFilter) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error

	// IncrementTotalsTx bumps the workflow-owned aggregate counters inside a
	// transaction. Only the purchase-order workflow calls this.
	IncrementTotalsTx(tx *gorm.DB, id uuid.UUID, orders int, amount decimal.Decimal) error
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *supplierRepo) List(ctx context.Context, filter dto.SupplierFilter) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	q := r.db.WithContext(ctx).Order("name ASC")
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"name ILIKE ? OR contact_person ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			like, like, like, like,
		)
	}
	if filter.ActiveOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *supplierRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Supplier{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *supplierRepo) IncrementTotalsTx(tx *gorm.DB, id uuid.UUID, orders int, amount decimal.Decimal) error {
	return tx.Model(&model.Supplier{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_orders": gorm.Expr("total_orders + ?", orders),
		"total_amount": gorm.Expr("total_amount + ?", amount),
	}).Error
}
