package taskflow

import (
	"errors"
	"fmt"
	"time"

	"officeflow/internal/model"
)

var (
	// ErrInvalidTransition is returned when an actor requests a status
	// outside their available set. The check runs here, before any write,
	// because several entry points call into the machine.
	ErrInvalidTransition = errors.New("status not available for this user")
)

// Apply performs a status change on the task in place. The requested status
// is validated against AvailableStatuses for the actor, so UI-level
// filtering alone is never trusted.
//
// Special cases:
//   - Ready for Next advances the handoff queue and leaves the task
//     On Work for the new active assignee.
//   - Reschedule (admin only) resets the task to Scheduled and returns the
//     queue to the front.
//   - Posted and Approved stamp the deadline with the completion time.
func Apply(task *model.Task, actor *model.User, s Status, now time.Time) error {
	if !CanApply(task, actor, s) {
		return fmt.Errorf("%w: %q", ErrInvalidTransition, s)
	}

	switch s {
	case ActionReschedule:
		task.Status = string(StatusScheduled)
		task.ActiveAssigneeIndex = 0

	case StatusReadyForNext:
		// Advance the queue. The stored status becomes On Work so the new
		// holder starts from a value they can themselves set. Admins see
		// the full vocabulary, so the bound has to be enforced here too.
		if task.ActiveAssigneeIndex >= len(task.AssigneeIDs)-1 {
			return fmt.Errorf("%w: no next assignee", ErrInvalidTransition)
		}
		task.ActiveAssigneeIndex++
		task.Status = string(StatusOnWork)

	default:
		task.Status = string(s)
		if isTerminal(s) {
			// The deadline doubles as the completion timestamp once a task
			// is closed out. Kept for compatibility with existing records.
			t := now
			task.Deadline = &t
		}
	}

	return nil
}
