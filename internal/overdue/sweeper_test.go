package overdue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"officeflow/internal/model"
	"officeflow/internal/overdue"
	"officeflow/internal/taskflow"
)

func TestDigest(t *testing.T) {
	past := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 4, 15, 9, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{Title: "late", Status: string(taskflow.StatusOnWork), Deadline: &past},
		{Title: "on-time", Status: string(taskflow.StatusOnWork), Deadline: &future},
		{Title: "posted-late", Status: string(taskflow.StatusPosted), Deadline: &past},
		{Title: "no-deadline", Status: string(taskflow.StatusOnWork)},
	}

	report := overdue.Digest(tasks, now)

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, "late", report.Tasks[0].Title)
}
