package model

import (
	"time"

	"github.com/google/uuid"
)

// ReadReceipt records when a user last viewed an entity's remark thread.
// Keyed by (user, entity) so unread indicators stay correct across every
// view of the same task or promotion.
type ReadReceipt struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receipt_user_entity"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receipt_user_entity"`
	LastSeenAt time.Time `gorm:"not null"`
}
