// Package promosync keeps a task and its linked promotion record
// consistent in both directions without update loops. The direction guard
// is an explicit parameter on every entry point: a change pushed across
// re-enters the bridge with the flag set and stops there. The guard is
// never inferred from value equality, which is exactly how the loop bug
// happens.
package promosync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"officeflow/internal/model"
	"officeflow/internal/repository"
	"officeflow/internal/taskflow"
)

// TaskStore is the task side of the document store as the bridge sees it.
type TaskStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PromotionStore is the promotion side of the document store.
type PromotionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error)
	FindByLinkedTaskID(ctx context.Context, taskID uuid.UUID) (*model.Promotion, error)
	Update(ctx context.Context, promo *model.Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserStore resolves assignee ids and usernames. Missing users resolve to
// nil, never an error.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type Bridge struct {
	tasks  TaskStore
	promos PromotionStore
	users  UserStore
	now    func() time.Time
}

func NewBridge(tasks TaskStore, promos PromotionStore, users UserStore, now func() time.Time) *Bridge {
	if now == nil {
		now = time.Now
	}
	return &Bridge{tasks: tasks, promos: promos, users: users, now: now}
}

// OnTaskChanged mirrors task fields onto the linked promotion.
// syncFromPromotion reports that this change was itself produced by a
// promotion-side sync, in which case the bridge stops instead of pushing
// back. Tasks without a promotion kind, or whose promotion record is gone,
// are a no-op.
//
// The two writes are independent: if the promotion write fails after the
// task was already saved by the caller, the pair is transiently
// inconsistent and the error surfaces as-is. The next successful sync
// corrects it.
func (b *Bridge) OnTaskChanged(ctx context.Context, task *model.Task, syncFromPromotion bool) error {
	if syncFromPromotion {
		return nil
	}
	if !task.IsPromotionLinked() {
		return nil
	}

	promo, err := b.promos.FindByLinkedTaskID(ctx, task.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil
		}
		return err
	}

	promo.Campaign = task.Title
	promo.AdType = task.ContentType
	promo.Date = task.Deadline
	promo.AssignedTo = b.assigneeUsername(ctx, task)
	if mapped, ok := taskToPromotionStatus[taskflow.Status(task.Status)]; ok {
		promo.Status = mapped
	}
	promo.Remarks = mergeRemarks(promo.Remarks, task.ProgressNotes)

	if err := b.promos.Update(ctx, promo); err != nil {
		return err
	}

	return b.OnPromotionChanged(ctx, promo, true)
}

// OnPromotionChanged mirrors promotion fields onto the linked task, with
// syncFromTask as the direction guard. A promotion that gains an assignee
// before any task exists gets one created and linked here.
func (b *Bridge) OnPromotionChanged(ctx context.Context, promo *model.Promotion, syncFromTask bool) error {
	if syncFromTask {
		return nil
	}

	if promo.LinkedTaskID == nil {
		return b.createLinkedTask(ctx, promo)
	}

	task, err := b.tasks.GetByID(ctx, *promo.LinkedTaskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil
		}
		return err
	}

	task.Title = promo.Campaign
	task.ContentType = promo.AdType
	task.Deadline = promo.Date
	if mapped, ok := promotionToTaskStatus[promo.Status]; ok {
		task.Status = string(mapped)
	}
	b.applyAssignedTo(ctx, task, promo.AssignedTo)
	task.ProgressNotes = mergeRemarks(task.ProgressNotes, promo.Remarks)

	if err := b.tasks.Update(ctx, task); err != nil {
		return err
	}

	return b.OnTaskChanged(ctx, task, true)
}

// DeletePromotion removes a promotion and cascades onto its linked task.
// A linked task already deleted out-of-band is not an error.
func (b *Bridge) DeletePromotion(ctx context.Context, promoID uuid.UUID) error {
	promo, err := b.promos.GetByID(ctx, promoID)
	if err != nil {
		return err
	}

	if promo.LinkedTaskID != nil {
		if err := b.tasks.Delete(ctx, *promo.LinkedTaskID); err != nil && !errors.Is(err, repository.ErrTaskNotFound) {
			return err
		}
	}

	return b.promos.Delete(ctx, promoID)
}

// Remark origins for AppendRemark.
const (
	OriginTask      = "task"
	OriginPromotion = "promotion"
)

// AppendRemark appends the same normalized remark to both sides of a
// linked pair. The remark lands on the origin record first; the mirror
// happens through the regular sync path, and the merge's identity check
// keeps it from being duplicated on a later round trip.
func (b *Bridge) AppendRemark(ctx context.Context, origin string, id uuid.UUID, remark model.Remark) error {
	if remark.Timestamp.IsZero() {
		remark.Timestamp = b.now()
	}

	switch origin {
	case OriginTask:
		task, err := b.tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		task.ProgressNotes = append(task.ProgressNotes, remark)
		if err := b.tasks.Update(ctx, task); err != nil {
			return err
		}
		return b.OnTaskChanged(ctx, task, false)

	case OriginPromotion:
		promo, err := b.promos.GetByID(ctx, id)
		if err != nil {
			return err
		}
		promo.Remarks = append(promo.Remarks, remark)
		if err := b.promos.Update(ctx, promo); err != nil {
			return err
		}
		return b.OnPromotionChanged(ctx, promo, false)
	}

	return errors.New("unknown remark origin: " + origin)
}

// createLinkedTask creates the mirrored task once a promotion has a
// resolvable assignee. Paid campaigns start Scheduled, plan campaigns
// start in To Do. An empty or unresolvable username is a no-op; creation
// happens on a later change once the name resolves.
func (b *Bridge) createLinkedTask(ctx context.Context, promo *model.Promotion) error {
	if promo.AssignedTo == "" {
		return nil
	}

	user, err := b.users.FindByUsername(ctx, promo.AssignedTo)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	status := taskflow.StatusScheduled
	if promo.Kind == model.PromotionKindPlan {
		status = taskflow.StatusToDo
	}

	var clientID *uuid.UUID
	if promo.ClientID != nil {
		id := *promo.ClientID
		clientID = &id
	}

	task := &model.Task{
		ID:            uuid.New(),
		ClientID:      clientID,
		Title:         promo.Campaign,
		Description:   promo.DescriptionMarker(),
		Kind:          promo.TaskKind(),
		Status:        string(status),
		ContentType:   promo.AdType,
		Deadline:      promo.Date,
		AssigneeIDs:   []uuid.UUID{user.ID},
		ProgressNotes: mergeRemarks(nil, promo.Remarks),
		CreatedBy:     user.ID,
	}

	if err := b.tasks.Create(ctx, task); err != nil {
		return err
	}

	promo.LinkedTaskID = &task.ID
	return b.promos.Update(ctx, promo)
}

// assigneeUsername resolves the first assignee slot to a username for the
// promotion's assignedTo field. Empty queue, cleared slot, or a dangling
// id all resolve to "" rather than an error.
func (b *Bridge) assigneeUsername(ctx context.Context, task *model.Task) string {
	if len(task.AssigneeIDs) == 0 || task.AssigneeIDs[0] == uuid.Nil {
		return ""
	}
	user, err := b.users.GetByID(ctx, task.AssigneeIDs[0])
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}

// applyAssignedTo mirrors the promotion's username onto slot 0 of the
// task's queue. Only applied when it actually changes the slot, since a
// queue mutation resets the handoff to the front.
func (b *Bridge) applyAssignedTo(ctx context.Context, task *model.Task, username string) {
	if username == "" {
		if len(task.AssigneeIDs) > 0 && task.AssigneeIDs[0] != uuid.Nil {
			_ = taskflow.SetAssignee(task, 0, uuid.Nil)
		}
		return
	}

	user, err := b.users.FindByUsername(ctx, username)
	if err != nil || user == nil {
		// Dangling username: leave the queue alone.
		return
	}
	if len(task.AssigneeIDs) > 0 && task.AssigneeIDs[0] == user.ID {
		return
	}
	_ = taskflow.SetAssignee(task, 0, user.ID)
}
