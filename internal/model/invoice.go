package model

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
)

type Invoice struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Number    string    `gorm:"uniqueIndex;not null"`
	Amount    float64   `gorm:"not null"`
	Status    string    `gorm:"not null;default:'draft';check:status IN ('draft', 'sent', 'paid')"`
	IssuedAt  time.Time
	DueDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Client Client `gorm:"foreignKey:ClientID"`
}
