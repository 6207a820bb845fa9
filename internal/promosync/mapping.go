package promosync

import (
	"officeflow/internal/model"
	"officeflow/internal/taskflow"
)

// Status mapping between the task vocabulary and the promotion vocabulary.
// Only the listed pairs sync; a status without a counterpart leaves the
// other side untouched.
var taskToPromotionStatus = map[taskflow.Status]string{
	taskflow.StatusOnWork:    model.PromotionStatusActive,
	taskflow.StatusPosted:    model.PromotionStatusStopped,
	taskflow.StatusScheduled: model.PromotionStatusScheduled,
	taskflow.StatusToDo:      model.PromotionStatusToDo,
}

var promotionToTaskStatus = map[string]taskflow.Status{
	model.PromotionStatusActive:    taskflow.StatusOnWork,
	model.PromotionStatusStopped:   taskflow.StatusPosted,
	model.PromotionStatusScheduled: taskflow.StatusScheduled,
	model.PromotionStatusToDo:      taskflow.StatusToDo,
}

// mergeRemarks appends entries of src missing from dst, preserving order.
// The merge is append-only: nothing already in dst is touched. Identity is
// (author, timestamp, text), which is stable across both sides since the
// bridge writes the same normalized remark everywhere.
func mergeRemarks(dst, src []model.Remark) []model.Remark {
	for _, r := range src {
		if !containsRemark(dst, r) {
			dst = append(dst, r)
		}
	}
	return dst
}

func containsRemark(list []model.Remark, r model.Remark) bool {
	for _, have := range list {
		if have.AuthorID == r.AuthorID && have.Timestamp.Equal(r.Timestamp) && have.Text == r.Text {
			return true
		}
	}
	return false
}
