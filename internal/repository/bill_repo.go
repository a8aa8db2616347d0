package repository

import (
	"context"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillRepository interface {
	// Create inserts the bill and its items inside the caller's transaction.
	Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error)
	List(ctx context.Context) ([]model.Bill, error)
	// ListBetween filters on created_at date (YYYY-MM-DD, inclusive).
	ListBetween(ctx context.Context, start, end string) ([]model.Bill, error)
	// DeleteTx removes the bill and its items inside the caller's transaction.
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type billRepo struct{ db *gorm.DB }

func NewBillRepository(db *gorm.DB) BillRepository { return &billRepo{db: db} }

func (r *billRepo) Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *billRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Preload("Items").First(&b, "id = ?", id).Error
	return &b, err
}

func (r *billRepo) List(ctx context.Context) ([]model.Bill, error) {
	var bills []model.Bill
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&bills).Error
	return bills, err
}

func (r *billRepo) ListBetween(ctx context.Context, start, end string) ([]model.Bill, error) {
	var bills []model.Bill
	err := r.db.WithContext(ctx).Preload("Items").
		Where("created_at::date >= ? AND created_at::date <= ?", start, end).
		Order("created_at ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Delete(&model.BillItem{}, "bill_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Bill{}, "id = ?", id).Error
}

func (r *billRepo) DB() *gorm.DB { return r.db }
