package model

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name         string    `gorm:"not null"`
	Company      string
	ContactEmail string
	ContactPhone string
	OwnerID      uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner User `gorm:"foreignKey:OwnerID"`
}
