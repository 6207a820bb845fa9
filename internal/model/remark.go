package model

import (
	"time"

	"github.com/google/uuid"
)

// Remark is a single progress note. The same shape is stored on a task's
// progress notes and on a promotion's remarks so the two lists can be merged.
type Remark struct {
	Text       string    `json:"text"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Timestamp  time.Time `json:"timestamp"`
	ImageRef   string    `json:"image_ref,omitempty"`
}
