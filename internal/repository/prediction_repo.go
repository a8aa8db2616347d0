package repository

import (
	"context"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"gorm.io/gorm"
)

type PredictionRepository interface {
	// ReplaceAll swaps the stored forecast with the latest run atomically.
	ReplaceAll(ctx context.Context, preds []model.Prediction) error
	ListLatest(ctx context.Context) ([]model.Prediction, error)
}

type predictionRepo struct{ db *gorm.DB }

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepo{db: db}
}

func (r *predictionRepo) ReplaceAll(ctx context.Context, preds []model.Prediction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Prediction{}).Error; err != nil {
			return err
		}
		if len(preds) == 0 {
			return nil
		}
		return tx.Create(&preds).Error
	})
}

func (r *predictionRepo) ListLatest(ctx context.Context) ([]model.Prediction, error) {
	var preds []model.Prediction
	err := r.db.WithContext(ctx).Order("predicted_demand DESC").Find(&preds).Error
	return preds, err
}
