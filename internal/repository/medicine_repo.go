package repository

import (
	"context"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicineRepository defines the data access contract for the inventory ledger.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type MedicineRepository interface {
	Create(ctx context.Context, m *model.Medicine) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Medicine, error)
	List(ctx context.Context, category string) ([]model.Medicine, error)
	Update(ctx context.Context, m *model.Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustQuantityTx applies a stock delta inside a transaction using a
	// conditional update: the decrement is refused (zero rows affected) when
	// it would push quantity below zero. This closes the lost-update hazard
	// of a separate read-check-write.
	AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) (bool, error)

	// SetBatchNoTx overwrites the batch number inside a transaction.
	SetBatchNoTx(tx *gorm.DB, id uuid.UUID, batchNo string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type medicineRepo struct{ db *gorm.DB }

func NewMedicineRepository(db *gorm.DB) MedicineRepository { return &medicineRepo{db: db} }

func (r *medicineRepo) Create(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medicineRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *medicineRepo) List(ctx context.Context, category string) ([]model.Medicine, error) {
	var meds []model.Medicine
	q := r.db.WithContext(ctx).Order("name ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&meds).Error
	return meds, err
}

func (r *medicineRepo) Update(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *medicineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Medicine{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *medicineRepo) AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) (bool, error) {
	res := tx.Model(&model.Medicine{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *medicineRepo) SetBatchNoTx(tx *gorm.DB, id uuid.UUID, batchNo string) error {
	return tx.Model(&model.Medicine{}).Where("id = ?", id).Update("batch_no", batchNo).Error
}

func (r *medicineRepo) DB() *gorm.DB { return r.db }
