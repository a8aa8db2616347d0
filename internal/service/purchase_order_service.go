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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseOrderService drives the ordering/receiving lifecycle:
//
//	pending → approved → received        (terminal)
//	pending | approved → cancelled       (terminal)
//
// Receiving is the only transition with cross-entity effects (medicine
// quantities, supplier totals) and is irreversible: goods
// intake is not undone once stock has been accepted.
type PurchaseOrderService interface {
	Create(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	Approve(ctx context.Context, id uuid.UUID, req dto.ApprovePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	Receive(ctx context.Context, id uuid.UUID, req dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req dto.CancelPurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseOrderResponse, error)
	List(ctx context.Context, filter dto.PurchaseOrderFilter) ([]dto.PurchaseOrderResponse, error)
	Statistics(ctx context.Context) (*dto.POStatisticsResponse, error)
}

type purchaseOrderService struct {
	repo         repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	medicineRepo repository.MedicineRepository
}

func NewPurchaseOrderService(
	repo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	medicineRepo repository.MedicineRepository,
) PurchaseOrderService {
	return &purchaseOrderService{
		repo:         repo,
		supplierRepo: supplierRepo,
		medicineRepo: medicineRepo,
	}
}

// ── Create ───────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Create(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier_id: %w", err)
	}
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("supplier %s: %w", req.SupplierID, apierror.ErrNotFound)
	}

	items, total, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	orderDate := req.OrderDate
	if orderDate == "" {
		orderDate = time.Now().Format("2006-01-02")
	}

	var po model.PurchaseOrder
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seq, err := s.repo.NextSequence(ctx, tx)
		if err != nil {
			return err
		}
		po = model.PurchaseOrder{
			PONumber:    fmt.Sprintf("PO-%s-%04d", time.Now().Format("20060102"), seq),
			SupplierID:  supplierID,
			OrderDate:   orderDate,
			Status:      model.POStatusPending,
			TotalAmount: total,
			Notes:       req.Notes,
			Items:       items,
		}
		if err := s.repo.Create(ctx, tx, &po); err != nil {
			return err
		}
		// total_amount is credited at receive time; creation only counts the order.
		return s.supplierRepo.IncrementTotalsTx(tx, supplierID, 1, decimal.Zero)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := poToResponse(&po)
	resp.SupplierName = supplier.Name
	return resp, nil
}

// resolveItems computes each line total (quantity × unit price) and the
// aggregate. Medicine names are denormalized from the catalog so the order
// remains readable if the medicine is later removed.
func (s *purchaseOrderService) resolveItems(ctx context.Context, reqItems []dto.POItemRequest) ([]model.PurchaseOrderItem, decimal.Decimal, error) {
	items := make([]model.PurchaseOrderItem, 0, len(reqItems))
	total := decimal.Zero
	for _, it := range reqItems {
		mid, err := uuid.Parse(it.MedicineID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("invalid medicine_id: %w", err)
		}
		name := ""
		if med, err := s.medicineRepo.FindByID(ctx, mid); err == nil {
			name = med.Name
		}
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		items = append(items, model.PurchaseOrderItem{
			MedicineID:   mid,
			MedicineName: name,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalPrice:   lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return items, total, nil
}

// ── Update ───────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("purchase order: %w", apierror.ErrNotFound)
	}
	if po.Status != model.POStatusPending {
		return nil, fmt.Errorf("cannot update a %s purchase order: %w", po.Status, apierror.ErrInvalidState)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		fields := map[string]interface{}{}
		if req.Notes != nil {
			fields["notes"] = *req.Notes
		}
		if len(req.Items) > 0 {
			items, total, err := s.resolveItems(ctx, req.Items)
			if err != nil {
				return err
			}
			if err := s.repo.ReplaceItemsTx(tx, id, items); err != nil {
				return err
			}
			fields["total_amount"] = total
		}
		if len(fields) == 0 {
			return nil
		}
		return s.repo.UpdateFieldsTx(tx, id, fields)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(ctx, id)
}

// ── Approve ──────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Approve(ctx context.Context, id uuid.UUID, req dto.ApprovePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("purchase order: %w", apierror.ErrNotFound)
	}
	if !po.Status.CanTransitionTo(model.POStatusApproved) {
		return nil, fmt.Errorf("cannot approve purchase order with status %s: %w", po.Status, apierror.ErrInvalidState)
	}

	now := time.Now()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateFieldsTx(tx, id, map[string]interface{}{
			"status":         model.POStatusApproved,
			"approved_by":    req.ApprovedBy,
			"approved_at":    now,
			"approval_notes": req.Notes,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(ctx, id)
}

// ── Receive ──────────────────────────────────────────────────────────────────

// Receive is the only transition with side effects outside the order itself:
// each received line is added to the medicine's on-hand quantity and the
// supplier's total_amount is credited with the PO's ordered amount.
//
// A received line whose medicine no longer exists is skipped (logged, not
// surfaced); the as-received list is still stored verbatim as the record of
// what the supplier delivered.
func (s *purchaseOrderService) Receive(ctx context.Context, id uuid.UUID, req dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("purchase order: %w", apierror.ErrNotFound)
	}
	if !po.Status.CanTransitionTo(model.POStatusReceived) {
		return nil, fmt.Errorf("can only receive approved purchase orders, current status %s: %w", po.Status, apierror.ErrInvalidState)
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "pending"
	}

	now := time.Now()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		received := make([]model.PurchaseOrderReceived, 0, len(req.ItemsReceived))
		for _, line := range req.ItemsReceived {
			mid, err := uuid.Parse(line.MedicineID)
			if err != nil {
				return fmt.Errorf("invalid medicine_id in items_received: %w", err)
			}
			received = append(received, model.PurchaseOrderReceived{
				PurchaseOrderID:  id,
				MedicineID:       mid,
				QuantityReceived: line.QuantityReceived,
				BatchNumber:      line.BatchNumber,
			})

			if line.QuantityReceived <= 0 {
				continue
			}
			if _, err := s.medicineRepo.FindByID(ctx, mid); err != nil {
				log.Warn().
					Str("po_number", po.PONumber).
					Str("medicine_id", line.MedicineID).
					Msg("received item references unknown medicine, stock not updated")
				continue
			}
			if _, err := s.medicineRepo.AdjustQuantityTx(tx, mid, line.QuantityReceived); err != nil {
				return err
			}
			if line.BatchNumber != "" {
				if err := s.medicineRepo.SetBatchNoTx(tx, mid, line.BatchNumber); err != nil {
					return err
				}
			}
		}

		if err := s.repo.CreateReceivedItemsTx(tx, received); err != nil {
			return err
		}
		if err := s.repo.UpdateFieldsTx(tx, id, map[string]interface{}{
			"status":         model.POStatusReceived,
			"received_by":    req.ReceivedBy,
			"received_at":    now,
			"receive_notes":  req.Notes,
			"payment_status": paymentStatus,
		}); err != nil {
			return err
		}
		// Credited with the ordered amount, not the received one.
		return s.supplierRepo.IncrementTotalsTx(tx, po.SupplierID, 0, po.TotalAmount)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(ctx, id)
}

// ── Cancel ───────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Cancel(ctx context.Context, id uuid.UUID, req dto.CancelPurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("purchase order: %w", apierror.ErrNotFound)
	}
	// Cancellation before receipt never touched inventory, so there is
	// nothing to reverse. A received order can never be cancelled.
	if po.Status == model.POStatusReceived {
		return nil, fmt.Errorf("cannot cancel a received purchase order: %w", apierror.ErrInvalidState)
	}

	now := time.Now()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateFieldsTx(tx, id, map[string]interface{}{
			"status":              model.POStatusCancelled,
			"cancelled_by":        req.CancelledBy,
			"cancelled_at":        now,
			"cancellation_reason": req.Reason,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(ctx, id)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("purchase order: %w", apierror.ErrNotFound)
	}
	if po.Status != model.POStatusPending && po.Status != model.POStatusCancelled {
		return fmt.Errorf("can only delete pending or cancelled purchase orders: %w", apierror.ErrInvalidState)
	}
	return s.repo.Delete(ctx, id)
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("purchase order: %w", apierror.ErrNotFound)
	}
	return poToResponse(po), nil
}

func (s *purchaseOrderService) List(ctx context.Context, filter dto.PurchaseOrderFilter) ([]dto.PurchaseOrderResponse, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *poToResponse(&orders[i]))
	}
	return out, nil
}

func (s *purchaseOrderService) Statistics(ctx context.Context) (*dto.POStatisticsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	receivedTotal, err := s.repo.SumTotalAmount(ctx, model.POStatusReceived)
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int64{
		"pending":   counts[model.POStatusPending],
		"approved":  counts[model.POStatusApproved],
		"received":  counts[model.POStatusReceived],
		"cancelled": counts[model.POStatusCancelled],
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	return &dto.POStatisticsResponse{
		TotalPurchaseOrders: total,
		ByStatus:            byStatus,
		TotalAmountReceived: receivedTotal,
	}, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func poToResponse(po *model.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.POItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.POItemResponse{
			MedicineID:   it.MedicineID.String(),
			MedicineName: it.MedicineName,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalPrice:   it.TotalPrice,
		})
	}
	received := make([]dto.ReceivedItemResponse, 0, len(po.ReceivedItems))
	for _, it := range po.ReceivedItems {
		received = append(received, dto.ReceivedItemResponse{
			MedicineID:       it.MedicineID.String(),
			QuantityReceived: it.QuantityReceived,
			BatchNumber:      it.BatchNumber,
		})
	}

	resp := &dto.PurchaseOrderResponse{
		ID:                 po.ID.String(),
		PONumber:           po.PONumber,
		SupplierID:         po.SupplierID.String(),
		OrderDate:          po.OrderDate,
		Status:             po.Status.String(),
		Items:              items,
		ItemsReceived:      received,
		TotalAmount:        po.TotalAmount,
		Notes:              po.Notes,
		ApprovedBy:         po.ApprovedBy,
		ApprovalNotes:      po.ApprovalNotes,
		ReceivedBy:         po.ReceivedBy,
		ReceiveNotes:       po.ReceiveNotes,
		PaymentStatus:      po.PaymentStatus,
		CancelledBy:        po.CancelledBy,
		CancellationReason: po.CancellationReason,
		CreatedAt:          po.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          po.UpdatedAt.Format(time.RFC3339),
	}
	if po.Supplier != nil {
		resp.SupplierName = po.Supplier.Name
		if po.Supplier.Phone != nil {
			resp.SupplierContact = *po.Supplier.Phone
		}
	}
	resp.ApprovedAt = formatTimePtr(po.ApprovedAt)
	resp.ReceivedAt = formatTimePtr(po.ReceivedAt)
	resp.CancelledAt = formatTimePtr(po.CancelledAt)
	return resp
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
