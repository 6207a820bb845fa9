package taskflow

import (
	"time"

	"officeflow/internal/model"
)

// EndOfDay normalizes a deadline to 23:59:59.999 of the same calendar day.
// Deadlines have date-only semantics; a task is not late until its day is
// fully over.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

// IsOverdue derives the virtual Overdue state from the task and the current
// time. It is recomputed on every read and never persisted. Tasks awaiting
// or past approval are exempt, as are tasks still in To Do.
func IsOverdue(task *model.Task, now time.Time) bool {
	if task.Deadline == nil {
		return false
	}
	switch Status(task.Status) {
	case StatusForApproval, StatusApproved, StatusPosted, StatusToDo:
		return false
	}
	return EndOfDay(*task.Deadline).Before(now)
}
