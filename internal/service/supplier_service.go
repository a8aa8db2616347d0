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
)

type SupplierService interface {
	Create(ctx context.Context, req dto.SupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context, filter dto.SupplierFilter) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SupplierRequest) (*dto.SupplierResponse, error)
	// Delete soft-deletes (deactivates) a supplier with purchase-order
	// history; a supplier with none is removed outright.
	Delete(ctx context.Context, id uuid.UUID) (softDeleted bool, err error)
	History(ctx context.Context, id uuid.UUID) (*dto.SupplierHistoryResponse, error)
	Stats(ctx context.Context, id uuid.UUID) (*dto.SupplierStatsResponse, error)
}

type supplierService struct {
	repo   repository.SupplierRepository
	poRepo repository.PurchaseOrderRepository
}

func NewSupplierService(repo repository.SupplierRepository, poRepo repository.PurchaseOrderRepository) SupplierService {
	return &supplierService{repo: repo, poRepo: poRepo}
}

func (s *supplierService) Create(ctx context.Context, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	sup := &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Rating:        req.Rating,
		Active:        true,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", apierror.ErrNotFound)
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) List(ctx context.Context, filter dto.SupplierFilter) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, *supplierToResponse(&suppliers[i]))
	}
	return out, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", apierror.ErrNotFound)
	}
	sup.Name = req.Name
	sup.ContactPerson = req.ContactPerson
	sup.Email = req.Email
	sup.Phone = req.Phone
	sup.Address = req.Address
	sup.Rating = req.Rating
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return false, fmt.Errorf("supplier: %w", apierror.ErrNotFound)
	}
	n, err := s.poRepo.CountBySupplier(ctx, id)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, s.repo.SoftDelete(ctx, id)
	}
	return false, s.repo.HardDelete(ctx, id)
}

func (s *supplierService) History(ctx context.Context, id uuid.UUID) (*dto.SupplierHistoryResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", apierror.ErrNotFound)
	}
	orders, err := s.poRepo.ListBySupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := dto.SupplierHistoryStats{TotalAmount: decimal.Zero}
	poOut := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		stats.TotalOrders++
		switch orders[i].Status {
		case model.POStatusReceived:
			stats.CompletedOrders++
			stats.TotalAmount = stats.TotalAmount.Add(orders[i].TotalAmount)
		case model.POStatusPending, model.POStatusApproved:
			stats.PendingOrders++
		}
		poOut = append(poOut, *poToResponse(&orders[i]))
	}

	return &dto.SupplierHistoryResponse{
		Supplier: dto.SupplierSummary{
			ID:     sup.ID.String(),
			Name:   sup.Name,
			Rating: sup.Rating,
		},
		Statistics:     stats,
		PurchaseOrders: poOut,
	}, nil
}

func (s *supplierService) Stats(ctx context.Context, id uuid.UUID) (*dto.SupplierStatsResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", apierror.ErrNotFound)
	}
	orders, err := s.poRepo.ListBySupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]dto.SupplierStatusRow)
	total := decimal.Zero
	for i := range orders {
		key := orders[i].Status.String()
		row := byStatus[key]
		row.Count++
		row.Amount = row.Amount.Add(orders[i].TotalAmount)
		byStatus[key] = row
		total = total.Add(orders[i].TotalAmount)
	}

	return &dto.SupplierStatsResponse{
		SupplierID:   sup.ID.String(),
		SupplierName: sup.Name,
		ByStatus:     byStatus,
		TotalOrders:  len(orders),
		TotalAmount:  total,
	}, nil
}

func supplierToResponse(sup *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            sup.ID.String(),
		Name:          sup.Name,
		ContactPerson: sup.ContactPerson,
		Email:         sup.Email,
		Phone:         sup.Phone,
		Address:       sup.Address,
		Rating:        sup.Rating,
		TotalOrders:   sup.TotalOrders,
		TotalAmount:   sup.TotalAmount,
		Active:        sup.Active,
		CreatedAt:     sup.CreatedAt.Format(time.RFC3339),
	}
}
