package taskflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"officeflow/internal/model"
	"officeflow/internal/taskflow"
)

func TestIsOverdue_PastDeadline(t *testing.T) {
	deadline := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	task := &model.Task{Status: string(taskflow.StatusOnWork), Deadline: &deadline}

	now := time.Date(2025, 5, 11, 8, 0, 0, 0, time.UTC)
	assert.True(t, taskflow.IsOverdue(task, now))
}

func TestIsOverdue_DeadlineDayNotOverYet(t *testing.T) {
	// Deadlines are date-only: the task is not late until the day ends.
	deadline := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	task := &model.Task{Status: string(taskflow.StatusOnWork), Deadline: &deadline}

	now := time.Date(2025, 5, 10, 23, 0, 0, 0, time.UTC)
	assert.False(t, taskflow.IsOverdue(task, now))

	now = time.Date(2025, 5, 11, 0, 0, 0, 1, time.UTC)
	assert.True(t, taskflow.IsOverdue(task, now))
}

func TestIsOverdue_ExemptStatuses(t *testing.T) {
	// Tasks awaiting or past approval are never overdue, nor are tasks
	// still in To Do, no matter how old the deadline is.
	deadline := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, s := range []taskflow.Status{
		taskflow.StatusForApproval,
		taskflow.StatusApproved,
		taskflow.StatusPosted,
		taskflow.StatusToDo,
	} {
		task := &model.Task{Status: string(s), Deadline: &deadline}
		assert.False(t, taskflow.IsOverdue(task, now), "status %q must be exempt", s)
	}
}

func TestIsOverdue_NoDeadline(t *testing.T) {
	task := &model.Task{Status: string(taskflow.StatusOnWork)}
	assert.False(t, taskflow.IsOverdue(task, time.Now()))
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)
	out := taskflow.EndOfDay(in)

	assert.Equal(t, time.Date(2025, 5, 10, 23, 59, 59, 999_000_000, time.UTC), out)
}
