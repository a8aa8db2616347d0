package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a derived inventory alert produced by the generator scan.
// Type: "low_stock" | "out_of_stock" | "expired" | "expiring_soon".
// Priority: "critical" | "warning" | "info".
//
// Dedup is by recency, not uniqueness: the generator skips insertion when an
// alert of the same (type, medicine) exists inside the lookback window, so
// repeated scans after the window re-create the same alert.
type Notification struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type         string    `gorm:"type:varchar(20);not null;index"`
	Priority     string    `gorm:"type:varchar(10);not null;index"`
	Title        string    `gorm:"not null"`
	Message      string    `gorm:"not null"`
	MedicineID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineName string    `gorm:"not null"`
	Read         bool      `gorm:"not null;default:false;index"`
	ReadAt       *time.Time
	CreatedAt    time.Time
}
