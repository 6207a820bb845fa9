// Package taskflow owns the task status vocabulary, the role-gated
// transition rules, the sequential assignee handoff and overdue
// derivation. It is pure logic: nothing here touches storage.
package taskflow

import "officeflow/internal/model"

type Status string

// Persisted statuses.
const (
	StatusToDo         Status = "To Do"
	StatusScheduled    Status = "Scheduled"
	StatusOnWork       Status = "On Work"
	StatusForApproval  Status = "For Approval"
	StatusApproved     Status = "Approved"
	StatusPosted       Status = "Posted"
	StatusHold         Status = "Hold"
	StatusReadyForNext Status = "Ready for Next"
)

// Virtual statuses. Neither is ever written to a task record:
// Overdue is derived from the deadline on every read, Reschedule is an
// admin action that resets state.
const (
	StatusOverdue    Status = "Overdue"
	ActionReschedule Status = "Reschedule"
)

// AllStatuses is the full persisted vocabulary, in display order.
var AllStatuses = []Status{
	StatusToDo,
	StatusScheduled,
	StatusOnWork,
	StatusForApproval,
	StatusApproved,
	StatusPosted,
	StatusHold,
	StatusReadyForNext,
}

// IsValid reports whether s is a persisted status value.
func IsValid(s Status) bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// isTerminal reports whether selecting s closes out the task. Terminal
// statuses also stamp the deadline with the completion time.
func isTerminal(s Status) bool {
	return s == StatusPosted || s == StatusApproved
}

// AvailableStatuses returns the set of statuses the acting user may select
// for the task right now. Admins always see the full vocabulary plus the
// Reschedule action. An employee sees nothing unless it is their turn in
// the handoff queue; the final assignee may close the task out, earlier
// assignees may only work, hold, or hand off.
func AvailableStatuses(task *model.Task, actor *model.User) []Status {
	if actor.Role == model.RoleAdmin {
		out := make([]Status, 0, len(AllStatuses)+1)
		out = append(out, AllStatuses...)
		out = append(out, ActionReschedule)
		return out
	}

	active, ok := task.ActiveAssignee()
	if !ok || active != actor.ID {
		return nil
	}

	if task.ActiveAssigneeIndex == len(task.AssigneeIDs)-1 {
		return []Status{StatusOnWork, StatusHold, StatusForApproval, StatusApproved, StatusPosted}
	}
	return []Status{StatusOnWork, StatusHold, StatusReadyForNext}
}

// CanApply reports whether the actor may select the given status for the task.
func CanApply(task *model.Task, actor *model.User, s Status) bool {
	for _, v := range AvailableStatuses(task, actor) {
		if v == s {
			return true
		}
	}
	return false
}
