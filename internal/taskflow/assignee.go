package taskflow

import (
	"errors"

	"github.com/google/uuid"

	"officeflow/internal/model"
)

// MaxAssignees caps the handoff queue length.
const MaxAssignees = 3

var (
	ErrSlotOutOfRange = errors.New("assignee slot out of range")
)

// SetAssignee writes userID into the given slot of the task's handoff
// queue. uuid.Nil clears the slot; cleared slots are not compacted, since
// slots are addressed positionally. A user may only occupy one slot, so a
// duplicate elsewhere in the queue is cleared first.
//
// Any queue mutation resets the active index to the front: the previous
// handoff order no longer holds once the team changes.
func SetAssignee(task *model.Task, slot int, userID uuid.UUID) error {
	if slot < 0 || slot >= MaxAssignees {
		return ErrSlotOutOfRange
	}

	for len(task.AssigneeIDs) <= slot {
		task.AssigneeIDs = append(task.AssigneeIDs, uuid.Nil)
	}

	if userID != uuid.Nil {
		for i, id := range task.AssigneeIDs {
			if i != slot && id == userID {
				task.AssigneeIDs[i] = uuid.Nil
			}
		}
	}

	task.AssigneeIDs[slot] = userID
	task.ActiveAssigneeIndex = 0
	return nil
}
