package model

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is one forecaster output row, persisted per run so the dashboard
// can show the latest demand estimates without recomputing.
type Prediction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicineName    string    `gorm:"index;not null"`
	PredictedDemand float64   `gorm:"not null"`
	Confidence      float64   `gorm:"not null"`
	Recommendation  string    `gorm:"type:varchar(20);not null"` // reorder | sufficient
	GeneratedAt     time.Time `gorm:"index;not null"`
}
