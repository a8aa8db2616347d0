package repository

import (
	"context"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	// Create inserts the sale inside the caller's transaction.
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	// List returns all sales, newest first.
	List(ctx context.Context) ([]model.Sale, error)
	// ListBetween returns sales with sale_date in [start, end] (YYYY-MM-DD, inclusive).
	ListBetween(ctx context.Context, start, end string) ([]model.Sale, error)
	// ListSince returns sales with sale_date >= start.
	ListSince(ctx context.Context, start string) ([]model.Sale, error)
	Count(ctx context.Context) (int64, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Order("sale_date DESC, created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListBetween(ctx context.Context, start, end string) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("sale_date >= ? AND sale_date <= ?", start, end).
		Order("sale_date ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListSince(ctx context.Context, start string) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Where("sale_date >= ?", start).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Count(&n).Error
	return n, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
