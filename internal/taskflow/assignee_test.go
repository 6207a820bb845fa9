package taskflow_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"officeflow/internal/model"
	"officeflow/internal/taskflow"
)

func TestSetAssignee_ResetsActiveIndex(t *testing.T) {
	// Arrange
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	task := &model.Task{AssigneeIDs: []uuid.UUID{a, b}, ActiveAssigneeIndex: 1}

	// Act
	err := taskflow.SetAssignee(task, 1, c)

	// Assert: any queue change restarts the handoff from the front
	assert.NoError(t, err)
	assert.Equal(t, 0, task.ActiveAssigneeIndex)
	assert.Equal(t, []uuid.UUID{a, c}, task.AssigneeIDs)
}

func TestSetAssignee_DeduplicatesAcrossSlots(t *testing.T) {
	// Arrange
	a, b := uuid.New(), uuid.New()
	task := &model.Task{AssigneeIDs: []uuid.UUID{a, b}}

	// Act: move a into the second slot
	err := taskflow.SetAssignee(task, 1, a)

	// Assert: a's old slot is cleared, not compacted
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{uuid.Nil, a}, task.AssigneeIDs)
}

func TestSetAssignee_ClearingKeepsSlotPositions(t *testing.T) {
	// Arrange
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	task := &model.Task{AssigneeIDs: []uuid.UUID{a, b, c}}

	// Act
	err := taskflow.SetAssignee(task, 1, uuid.Nil)

	// Assert: slots are positional, the hole stays
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, uuid.Nil, c}, task.AssigneeIDs)
}

func TestSetAssignee_GrowsQueueToSlot(t *testing.T) {
	// Arrange
	a := uuid.New()
	task := &model.Task{}

	// Act
	err := taskflow.SetAssignee(task, 2, a)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{uuid.Nil, uuid.Nil, a}, task.AssigneeIDs)
}

func TestSetAssignee_SlotOutOfRange(t *testing.T) {
	task := &model.Task{}

	assert.ErrorIs(t, taskflow.SetAssignee(task, taskflow.MaxAssignees, uuid.New()), taskflow.ErrSlotOutOfRange)
	assert.ErrorIs(t, taskflow.SetAssignee(task, -1, uuid.New()), taskflow.ErrSlotOutOfRange)
}

func TestSetAssignee_ClearedActiveSlotBlocksEmployees(t *testing.T) {
	// Arrange
	emp := &model.User{ID: uuid.New(), Role: model.RoleEmployee}
	task := &model.Task{AssigneeIDs: []uuid.UUID{emp.ID}, Status: string(taskflow.StatusOnWork)}

	// Act
	assert.NoError(t, taskflow.SetAssignee(task, 0, uuid.Nil))

	// Assert: nobody's turn, so the status is read-only for employees
	assert.Empty(t, taskflow.AvailableStatuses(task, emp))
}
