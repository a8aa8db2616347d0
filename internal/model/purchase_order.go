package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POStatus is the purchase-order lifecycle state.
type POStatus string

const (
	POStatusPending   POStatus = "pending"
	POStatusApproved  POStatus = "approved"
	POStatusReceived  POStatus = "received"
	POStatusCancelled POStatus = "cancelled"
)

func (s POStatus) String() string { return string(s) }

// IsValid reports whether s is a known lifecycle state.
func (s POStatus) IsValid() bool {
	switch s {
	case POStatusPending, POStatusApproved, POStatusReceived, POStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the state machine:
//
//	pending  → approved | cancelled
//	approved → received | cancelled
//	received, cancelled → (terminal)
func (s POStatus) CanTransitionTo(target POStatus) bool {
	switch s {
	case POStatusPending:
		return target == POStatusApproved || target == POStatusCancelled
	case POStatusApproved:
		return target == POStatusReceived || target == POStatusCancelled
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s POStatus) IsTerminal() bool {
	return s == POStatusReceived || s == POStatusCancelled
}

// PurchaseOrder is the supplier ordering/receiving workflow entity.
// Invariants: TotalAmount always equals the sum of current line totals;
// status transitions are monotonic per POStatus.CanTransitionTo; once
// received, the ReceivedItems list is immutable.
type PurchaseOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PONumber   string    `gorm:"uniqueIndex;not null;column:po_number"` // PO-<YYYYMMDD>-<seq>
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderDate  string    `gorm:"type:varchar(10);index;not null"` // YYYY-MM-DD
	Status     POStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	// TotalAmount is based on ordered quantities, not received ones.
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Notes       *string

	// Transition metadata, set once by the matching transition and then frozen.
	ApprovedBy         *string
	ApprovedAt         *time.Time
	ApprovalNotes      *string
	ReceivedBy         *string
	ReceivedAt         *time.Time
	ReceiveNotes       *string
	PaymentStatus      *string `gorm:"type:varchar(20)"`
	CancelledBy        *string
	CancelledAt        *time.Time
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Supplier      *Supplier               `gorm:"foreignKey:SupplierID"`
	Items         []PurchaseOrderItem     `gorm:"foreignKey:PurchaseOrderID"`
	ReceivedItems []PurchaseOrderReceived `gorm:"foreignKey:PurchaseOrderID"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

// PurchaseOrderItem is an ordered line. TotalPrice = Quantity × UnitPrice.
type PurchaseOrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineID      uuid.UUID `gorm:"type:uuid;not null"`
	MedicineName    string    `gorm:"not null"`
	Quantity        int       `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (PurchaseOrderItem) TableName() string { return "purchase_order_items" }

// PurchaseOrderReceived is an as-received line, stored verbatim at receive
// time. It is the source of truth for what was actually added to stock and
// may differ from the ordered quantities; no reconciliation is performed.
type PurchaseOrderReceived struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseOrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineID       uuid.UUID `gorm:"type:uuid;not null"`
	QuantityReceived int       `gorm:"not null"`
	BatchNumber      string
}

func (PurchaseOrderReceived) TableName() string { return "purchase_order_received_items" }
