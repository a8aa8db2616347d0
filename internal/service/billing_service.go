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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceRenderer turns a bill into a PDF on disk and returns its path.
type InvoiceRenderer interface {
	Render(b *model.Bill) (string, error)
}

type BillingService interface {
	Create(ctx context.Context, req dto.CreateBillRequest) (*dto.BillResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error)
	List(ctx context.Context) ([]dto.BillResponse, error)
	// Delete removes the bill and restores each line's quantity onto the
	// medicine record, the exact inverse of Create.
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*dto.BillStatsResponse, error)
	// InvoicePDF renders (or re-renders) the invoice and returns the file path.
	InvoicePDF(ctx context.Context, id uuid.UUID) (string, error)
}

type billingService struct {
	repo         repository.BillRepository
	medicineRepo repository.MedicineRepository
	customerRepo repository.CustomerRepository
	renderer     InvoiceRenderer
	defaultGST   decimal.Decimal
}

func NewBillingService(
	repo repository.BillRepository,
	medicineRepo repository.MedicineRepository,
	customerRepo repository.CustomerRepository,
	renderer InvoiceRenderer,
	defaultGST decimal.Decimal,
) BillingService {
	return &billingService{
		repo:         repo,
		medicineRepo: medicineRepo,
		customerRepo: customerRepo,
		renderer:     renderer,
		defaultGST:   defaultGST,
	}
}

// Create validates every line before touching stock: a bill either commits
// fully or leaves every quantity unchanged. Prices are read from the catalog,
// never from the client.
func (s *billingService) Create(ctx context.Context, req dto.CreateBillRequest) (*dto.BillResponse, error) {
	type resolvedLine struct {
		medicine *model.Medicine
		quantity int
	}
	lines := make([]resolvedLine, 0, len(req.Items))
	for _, it := range req.Items {
		mid, err := uuid.Parse(it.MedicineID)
		if err != nil {
			return nil, fmt.Errorf("invalid medicine_id: %w", err)
		}
		med, err := s.medicineRepo.FindByID(ctx, mid)
		if err != nil {
			return nil, fmt.Errorf("medicine %s: %w", it.MedicineID, apierror.ErrNotFound)
		}
		if med.Quantity < it.Quantity {
			return nil, fmt.Errorf("medicine %s has only %d in stock: %w", med.Name, med.Quantity, apierror.ErrInsufficientStock)
		}
		lines = append(lines, resolvedLine{medicine: med, quantity: it.Quantity})
	}

	gst := req.GSTPercentage
	if gst.IsZero() {
		gst = s.defaultGST
	}

	subtotal := decimal.Zero
	items := make([]model.BillItem, 0, len(lines))
	for _, line := range lines {
		lineTotal := line.medicine.Price.Mul(decimal.NewFromInt(int64(line.quantity)))
		items = append(items, model.BillItem{
			MedicineID:   line.medicine.ID,
			MedicineName: line.medicine.Name,
			Quantity:     line.quantity,
			Price:        line.medicine.Price,
			TotalPrice:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	gstAmount := subtotal.Mul(gst).Div(decimal.NewFromInt(100)).Round(2)

	bill := &model.Bill{
		BillNumber:     req.BillNumber,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerGSTIN:  req.CustomerGSTIN,
		BillingAddress: req.BillingAddress,
		PaymentMode:    req.PaymentMode,
		Subtotal:       subtotal,
		GSTPercentage:  gst,
		GSTAmount:      gstAmount,
		GrandTotal:     subtotal.Add(gstAmount),
		Items:          items,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, line := range lines {
			applied, err := s.medicineRepo.AdjustQuantityTx(tx, line.medicine.ID, -line.quantity)
			if err != nil {
				return err
			}
			if !applied {
				return fmt.Errorf("medicine %s went out of stock: %w", line.medicine.Name, apierror.ErrInsufficientStock)
			}
		}
		return s.repo.Create(ctx, tx, bill)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.creditCustomer(ctx, bill)
	return billToResponse(bill), nil
}

// creditCustomer bumps the purchase aggregates of the customer matching the
// bill's phone, if any. Best effort: a failure here never fails the bill.
func (s *billingService) creditCustomer(ctx context.Context, bill *model.Bill) {
	if bill.CustomerPhone == nil || *bill.CustomerPhone == "" {
		return
	}
	customer, err := s.customerRepo.FindByPhone(ctx, *bill.CustomerPhone)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Str("phone", *bill.CustomerPhone).Msg("customer lookup failed")
		}
		return
	}
	err = s.customerRepo.Update(ctx, customer.ID, map[string]interface{}{
		"total_purchases":    gorm.Expr("total_purchases + ?", bill.GrandTotal),
		"last_purchase_date": time.Now().Format("2006-01-02"),
	})
	if err != nil {
		log.Warn().Err(err).Str("bill_number", bill.BillNumber).Msg("customer aggregate update failed")
	}
}

func (s *billingService) GetByID(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("bill: %w", apierror.ErrNotFound)
	}
	return billToResponse(bill), nil
}

func (s *billingService) List(ctx context.Context) ([]dto.BillResponse, error) {
	bills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		out = append(out, *billToResponse(&bills[i]))
	}
	return out, nil
}

func (s *billingService) Delete(ctx context.Context, id uuid.UUID) error {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("bill: %w", apierror.ErrNotFound)
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, it := range bill.Items {
			if _, err := s.medicineRepo.AdjustQuantityTx(tx, it.MedicineID, it.Quantity); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func (s *billingService) Stats(ctx context.Context) (*dto.BillStatsResponse, error) {
	bills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for i := range bills {
		revenue = revenue.Add(bills[i].GrandTotal)
	}
	avg := decimal.Zero
	if len(bills) > 0 {
		avg = revenue.Div(decimal.NewFromInt(int64(len(bills)))).Round(2)
	}
	return &dto.BillStatsResponse{
		TotalBills:   int64(len(bills)),
		TotalRevenue: revenue,
		AvgBillValue: avg,
	}, nil
}

func (s *billingService) InvoicePDF(ctx context.Context, id uuid.UUID) (string, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("bill: %w", apierror.ErrNotFound)
	}
	return s.renderer.Render(bill)
}

func billToResponse(bill *model.Bill) *dto.BillResponse {
	items := make([]dto.BillItemResponse, 0, len(bill.Items))
	for _, it := range bill.Items {
		items = append(items, dto.BillItemResponse{
			MedicineID:   it.MedicineID.String(),
			MedicineName: it.MedicineName,
			Quantity:     it.Quantity,
			Price:        it.Price,
			TotalPrice:   it.TotalPrice,
		})
	}
	return &dto.BillResponse{
		ID:             bill.ID.String(),
		BillNumber:     bill.BillNumber,
		CustomerName:   bill.CustomerName,
		CustomerPhone:  bill.CustomerPhone,
		CustomerGSTIN:  bill.CustomerGSTIN,
		BillingAddress: bill.BillingAddress,
		PaymentMode:    bill.PaymentMode,
		Items:          items,
		Subtotal:       bill.Subtotal,
		GSTPercentage:  bill.GSTPercentage,
		GSTAmount:      bill.GSTAmount,
		GrandTotal:     bill.GrandTotal,
		CreatedAt:      bill.CreatedAt.Format(time.RFC3339),
	}
}
