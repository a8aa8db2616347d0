package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account. Role: "admin" | "pharmacist" | "cashier".
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Username     string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'pharmacist'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
