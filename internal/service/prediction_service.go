package service

import (
	"context"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/forecast"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/repository"

	"github.com/rs/zerolog/log"
)

// minSalesForForecast gates the forecaster: with fewer total sales the fits
// are noise, so callers get an explanatory message instead of predictions.
const minSalesForForecast = 7

type PredictionService interface {
	// Predict recomputes demand estimates from the full sale history and
	// persists them. Returns (nil, message) when the dataset is too small.
	Predict(ctx context.Context) ([]dto.PredictionResponse, string, error)
	// Latest returns the most recently persisted run.
	Latest(ctx context.Context) ([]dto.PredictionResponse, error)
}

type predictionService struct {
	repo     repository.PredictionRepository
	saleRepo repository.SaleRepository
}

func NewPredictionService(repo repository.PredictionRepository, saleRepo repository.SaleRepository) PredictionService {
	return &predictionService{repo: repo, saleRepo: saleRepo}
}

func (s *predictionService) Predict(ctx context.Context) ([]dto.PredictionResponse, string, error) {
	count, err := s.saleRepo.Count(ctx)
	if err != nil {
		return nil, "", err
	}
	if count < minSalesForForecast {
		return nil, "Not enough sales data for predictions. At least 7 sales are required.", nil
	}

	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}

	points := make([]forecast.SalePoint, 0, len(sales))
	for i := range sales {
		day, err := time.Parse("2006-01-02", sales[i].SaleDate)
		if err != nil {
			log.Warn().
				Str("sale_id", sales[i].ID.String()).
				Str("sale_date", sales[i].SaleDate).
				Msg("unparseable sale date, excluded from forecast")
			continue
		}
		points = append(points, forecast.SalePoint{
			MedicineName: sales[i].MedicineName,
			SaleDate:     day,
			Quantity:     sales[i].Quantity,
		})
	}

	predictions := forecast.PredictDemand(points)

	now := time.Now()
	rows := make([]model.Prediction, 0, len(predictions))
	out := make([]dto.PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		rows = append(rows, model.Prediction{
			MedicineName:    p.MedicineName,
			PredictedDemand: p.PredictedDemand,
			Confidence:      p.Confidence,
			Recommendation:  p.Recommendation,
			GeneratedAt:     now,
		})
		out = append(out, dto.PredictionResponse{
			MedicineName:    p.MedicineName,
			PredictedDemand: p.PredictedDemand,
			Confidence:      p.Confidence,
			Recommendation:  p.Recommendation,
		})
	}
	if err := s.repo.ReplaceAll(ctx, rows); err != nil {
		return nil, "", err
	}
	return out, "", nil
}

func (s *predictionService) Latest(ctx context.Context) ([]dto.PredictionResponse, error) {
	rows, err := s.repo.ListLatest(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PredictionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.PredictionResponse{
			MedicineName:    rows[i].MedicineName,
			PredictedDemand: rows[i].PredictedDemand,
			Confidence:      rows[i].Confidence,
			Recommendation:  rows[i].Recommendation,
		})
	}
	return out, nil
}
