package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	List(ctx context.Context) ([]dto.SaleResponse, error)
	// Summary groups all sales by medicine name.
	Summary(ctx context.Context) ([]dto.SaleSummaryRow, error)
}

type saleService struct {
	repo         repository.SaleRepository
	medicineRepo repository.MedicineRepository
}

func NewSaleService(repo repository.SaleRepository, medicineRepo repository.MedicineRepository) SaleService {
	return &saleService{repo: repo, medicineRepo: medicineRepo}
}

func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	mid, err := uuid.Parse(req.MedicineID)
	if err != nil {
		return nil, fmt.Errorf("invalid medicine_id: %w", err)
	}
	med, err := s.medicineRepo.FindByID(ctx, mid)
	if err != nil {
		return nil, fmt.Errorf("medicine %s: %w", req.MedicineID, apierror.ErrNotFound)
	}

	saleDate := req.SaleDate
	if saleDate == "" {
		saleDate = time.Now().Format("2006-01-02")
	}

	sale := &model.Sale{
		MedicineID:   mid,
		MedicineName: med.Name,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Total:        req.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		SaleDate:     saleDate,
		UserEmail:    req.UserEmail,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		applied, err := s.medicineRepo.AdjustQuantityTx(tx, mid, -req.Quantity)
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("medicine %s has only %d in stock: %w", med.Name, med.Quantity, apierror.ErrInsufficientStock)
		}
		return s.repo.Create(ctx, tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleToResponse(&sales[i]))
	}
	return out, nil
}

func (s *saleService) Summary(ctx context.Context) ([]dto.SaleSummaryRow, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*dto.SaleSummaryRow)
	var order []string
	for i := range sales {
		row, ok := byName[sales[i].MedicineName]
		if !ok {
			row = &dto.SaleSummaryRow{MedicineName: sales[i].MedicineName, TotalRevenue: decimal.Zero}
			byName[sales[i].MedicineName] = row
			order = append(order, sales[i].MedicineName)
		}
		row.TotalQuantity += sales[i].Quantity
		row.TotalRevenue = row.TotalRevenue.Add(sales[i].Total)
		row.Count++
	}
	out := make([]dto.SaleSummaryRow, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:           sale.ID.String(),
		MedicineID:   sale.MedicineID.String(),
		MedicineName: sale.MedicineName,
		Quantity:     sale.Quantity,
		Price:        sale.Price,
		Total:        sale.Total,
		SaleDate:     sale.SaleDate,
		UserEmail:    sale.UserEmail,
		CreatedAt:    sale.CreatedAt.Format(time.RFC3339),
	}
}
