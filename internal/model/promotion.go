package model

import (
	"time"

	"github.com/google/uuid"
)

// Promotion kinds. Paid and plan campaigns share one model and one sync
// path, discriminated by this tag.
const (
	PromotionKindPaid = "paid"
	PromotionKindPlan = "plan"
)

// Promotion statuses (promotion-specific vocabulary, distinct from task
// statuses).
const (
	PromotionStatusScheduled = "Scheduled"
	PromotionStatusActive    = "Active"
	PromotionStatusStopped   = "Stopped"
	PromotionStatusToDo      = "To Do"
)

type Promotion struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ClientID *uuid.UUID `gorm:"type:uuid;index"`
	Kind     string     `gorm:"not null;check:kind IN ('paid', 'plan')"`
	Campaign string     `gorm:"not null"`
	AdType   string
	Date     *time.Time
	Budget   float64
	Spent    float64
	Status   string `gorm:"not null;default:'Scheduled'"`

	// AssignedTo is a username, not a user id. The sync bridge resolves it
	// against the user table when mirroring onto the linked task.
	AssignedTo string

	Remarks []Remark `gorm:"serializer:json;type:jsonb"`

	// LinkedTaskID is a weak reference to the mirrored task. Both promotion
	// kinds link the same way.
	LinkedTaskID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
}

// DescriptionMarker returns the human-readable marker written into the
// description of auto-created tasks, kept for display compatibility.
func (p *Promotion) DescriptionMarker() string {
	if p.Kind == PromotionKindPlan {
		return "Plan Promotion"
	}
	return "Paid Promotion"
}

// TaskKind returns the task kind matching this promotion's kind.
func (p *Promotion) TaskKind() string {
	if p.Kind == PromotionKindPlan {
		return TaskKindPlanPromotion
	}
	return TaskKindPaidPromotion
}
