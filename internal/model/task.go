package model

import (
	"time"

	"github.com/google/uuid"
)

// Task kinds. Promotion-linked tasks carry an explicit kind tag instead of
// a magic description string.
const (
	TaskKindStandard      = "standard"
	TaskKindPaidPromotion = "paid_promotion"
	TaskKindPlanPromotion = "plan_promotion"
)

// DefaultPriority is used when a task has no explicit priority.
// Lower numbers sort first.
const DefaultPriority = 99

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"not null"`
	Description string
	Kind        string `gorm:"not null;default:'standard';check:kind IN ('standard', 'paid_promotion', 'plan_promotion')"`
	Status      string `gorm:"not null"`
	Priority    int    `gorm:"not null;default:99"`
	ContentType string
	Deadline    *time.Time

	// AssigneeIDs is the ordered handoff queue (at most three slots).
	// Slots are positional: an empty slot holds uuid.Nil and is never
	// compacted away.
	AssigneeIDs         []uuid.UUID `gorm:"serializer:json;type:jsonb"`
	ActiveAssigneeIndex int         `gorm:"not null;default:0"`

	ProgressNotes []Remark `gorm:"serializer:json;type:jsonb"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Client  *Client `gorm:"foreignKey:ClientID"`
	Creator User    `gorm:"foreignKey:CreatedBy"`
}

// IsPromotionLinked reports whether the task mirrors a promotion record.
func (t *Task) IsPromotionLinked() bool {
	return t.Kind == TaskKindPaidPromotion || t.Kind == TaskKindPlanPromotion
}

// ActiveAssignee returns the user id whose turn it currently is.
// The second return value is false when nobody can act: the queue is empty,
// the index points outside it, or the active slot has been cleared.
func (t *Task) ActiveAssignee() (uuid.UUID, bool) {
	if t.ActiveAssigneeIndex < 0 || t.ActiveAssigneeIndex >= len(t.AssigneeIDs) {
		return uuid.Nil, false
	}
	id := t.AssigneeIDs[t.ActiveAssigneeIndex]
	if id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
