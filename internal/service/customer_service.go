package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const topCustomerLimit = 10

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*dto.CustomerStatsResponse, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if _, err := s.repo.FindByPhone(ctx, req.Phone); err == nil {
		return nil, fmt.Errorf("customer with phone %s already exists: %w", req.Phone, apierror.ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &model.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", apierror.ErrNotFound)
	}
	return customerToResponse(c), nil
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *customerToResponse(&customers[i]))
	}
	return out, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("customer: %w", apierror.ErrNotFound)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		// Reject a phone already held by a different customer.
		if existing, err := s.repo.FindByPhone(ctx, *req.Phone); err == nil && existing.ID != id {
			return nil, fmt.Errorf("customer with phone %s already exists: %w", *req.Phone, apierror.ErrDuplicate)
		}
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if len(fields) > 0 {
		if err := s.repo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("customer: %w", apierror.ErrNotFound)
	}
	return nil
}

func (s *customerService) Stats(ctx context.Context) (*dto.CustomerStatsResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopByPurchases(ctx, topCustomerLimit)
	if err != nil {
		return nil, err
	}
	topOut := make([]dto.CustomerResponse, 0, len(top))
	for i := range top {
		topOut = append(topOut, *customerToResponse(&top[i]))
	}
	return &dto.CustomerStatsResponse{TotalCustomers: total, TopCustomers: topOut}, nil
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		TotalPurchases:   c.TotalPurchases,
		LastPurchaseDate: c.LastPurchaseDate,
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
}
