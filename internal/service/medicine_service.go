package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/repository"

	"github.com/google/uuid"
)

const defaultReorderLevel = 50

type MedicineService interface {
	Create(ctx context.Context, req dto.MedicineRequest) (*dto.MedicineResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	List(ctx context.Context, category string) ([]dto.MedicineResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.MedicineRequest) (*dto.MedicineResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListExpiring returns medicines expiring within the given number of days,
	// soonest first. Rows with unparseable expiry dates are skipped.
	ListExpiring(ctx context.Context, days int) ([]dto.ExpiringMedicineResponse, error)
}

type medicineService struct {
	repo repository.MedicineRepository
}

func NewMedicineService(repo repository.MedicineRepository) MedicineService {
	return &medicineService{repo: repo}
}

func (s *medicineService) Create(ctx context.Context, req dto.MedicineRequest) (*dto.MedicineResponse, error) {
	reorder := req.ReorderLevel
	if reorder == 0 {
		reorder = defaultReorderLevel
	}
	m := &model.Medicine{
		Name:         req.Name,
		BatchNo:      req.BatchNo,
		Quantity:     req.Quantity,
		Price:        req.Price,
		ExpiryDate:   req.ExpiryDate,
		Category:     req.Category,
		ReorderLevel: reorder,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return medicineToResponse(m), nil
}

func (s *medicineService) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("medicine: %w", apierror.ErrNotFound)
	}
	return medicineToResponse(m), nil
}

func (s *medicineService) List(ctx context.Context, category string) ([]dto.MedicineResponse, error) {
	meds, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MedicineResponse, 0, len(meds))
	for i := range meds {
		out = append(out, *medicineToResponse(&meds[i]))
	}
	return out, nil
}

func (s *medicineService) Update(ctx context.Context, id uuid.UUID, req dto.MedicineRequest) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("medicine: %w", apierror.ErrNotFound)
	}
	m.Name = req.Name
	m.BatchNo = req.BatchNo
	m.Quantity = req.Quantity
	m.Price = req.Price
	m.ExpiryDate = req.ExpiryDate
	m.Category = req.Category
	if req.ReorderLevel > 0 {
		m.ReorderLevel = req.ReorderLevel
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return medicineToResponse(m), nil
}

func (s *medicineService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("medicine: %w", apierror.ErrNotFound)
	}
	return nil
}

func (s *medicineService) ListExpiring(ctx context.Context, days int) ([]dto.ExpiringMedicineResponse, error) {
	meds, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	today := startOfDay(time.Now())
	out := make([]dto.ExpiringMedicineResponse, 0)
	for i := range meds {
		expiry, err := time.Parse("2006-01-02", meds[i].ExpiryDate)
		if err != nil {
			continue
		}
		daysLeft := int(expiry.Sub(today).Hours() / 24)
		if daysLeft < 0 || daysLeft > days {
			continue
		}
		out = append(out, dto.ExpiringMedicineResponse{
			MedicineResponse: *medicineToResponse(&meds[i]),
			DaysUntilExpiry:  daysLeft,
		})
	}
	// Soonest expiry first.
	sort.Slice(out, func(i, j int) bool { return out[i].DaysUntilExpiry < out[j].DaysUntilExpiry })
	return out, nil
}

func medicineToResponse(m *model.Medicine) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		BatchNo:      m.BatchNo,
		Quantity:     m.Quantity,
		Price:        m.Price,
		ExpiryDate:   m.ExpiryDate,
		Category:     m.Category,
		ReorderLevel: m.ReorderLevel,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
