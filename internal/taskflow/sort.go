package taskflow

import (
	"sort"

	"officeflow/internal/model"
)

// Sort orders tasks for list views: deadline descending (newest first,
// tasks without a deadline last), then priority ascending as the
// tie-break. A zero priority is treated as the default (lowest).
func Sort(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		switch {
		case a.Deadline == nil && b.Deadline != nil:
			return false
		case a.Deadline != nil && b.Deadline == nil:
			return true
		case a.Deadline != nil && b.Deadline != nil:
			if !a.Deadline.Equal(*b.Deadline) {
				return a.Deadline.After(*b.Deadline)
			}
		}

		return effectivePriority(a.Priority) < effectivePriority(b.Priority)
	})
}

func effectivePriority(p int) int {
	if p <= 0 {
		return model.DefaultPriority
	}
	return p
}
