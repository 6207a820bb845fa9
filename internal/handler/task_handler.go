package handler

import (
	"errors"
	"net/http"
	"time"

	"officeflow/internal/model"
	"officeflow/internal/promosync"
	"officeflow/internal/repository"
	"officeflow/internal/taskflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskRepo repository.TaskRepositoryInterface
	userRepo repository.UserRepositoryInterface
	receipts repository.ReadReceiptRepositoryInterface
	bridge   SyncBridge
	now      func() time.Time
}

func NewTaskHandler(
	taskRepo repository.TaskRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	receipts repository.ReadReceiptRepositoryInterface,
	bridge SyncBridge,
) *TaskHandler {
	return &TaskHandler{
		taskRepo: taskRepo,
		userRepo: userRepo,
		receipts: receipts,
		bridge:   bridge,
		now:      time.Now,
	}
}

// TaskRequest is the create/update payload
type TaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Kind        string     `json:"kind" binding:"omitempty,oneof=standard paid_promotion plan_promotion"`
	ClientID    *string    `json:"client_id" binding:"omitempty,uuid"`
	ContentType string     `json:"content_type"`
	Priority    int        `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
}

type StatusChangeRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssigneeRequest struct {
	Slot   int    `json:"slot" binding:"min=0,max=2"`
	UserID string `json:"user_id" binding:"omitempty,uuid"`
}

type RemarkRequest struct {
	Text     string `json:"text" binding:"required"`
	ImageRef string `json:"image_ref"`
}

// TaskResponse is the task as list and detail views render it. Overdue is
// derived on every read, never stored.
type TaskResponse struct {
	ID                  string         `json:"id"`
	ClientID            *string        `json:"client_id,omitempty"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Kind                string         `json:"kind"`
	Status              string         `json:"status"`
	Overdue             bool           `json:"overdue"`
	Priority            int            `json:"priority"`
	ContentType         string         `json:"content_type,omitempty"`
	Deadline            *time.Time     `json:"deadline,omitempty"`
	AssigneeIDs         []string       `json:"assignee_ids"`
	AssigneeNames       []string       `json:"assignee_names"`
	ActiveAssigneeIndex int            `json:"active_assignee_index"`
	ProgressNotes       []model.Remark `json:"progress_notes"`
	Unread              bool           `json:"unread"`
}

func (h *TaskHandler) toResponse(c *gin.Context, task *model.Task, actor *model.User) TaskResponse {
	resp := TaskResponse{
		ID:                  task.ID.String(),
		Title:               task.Title,
		Description:         task.Description,
		Kind:                task.Kind,
		Status:              task.Status,
		Overdue:             taskflow.IsOverdue(task, h.now()),
		Priority:            task.Priority,
		ContentType:         task.ContentType,
		Deadline:            task.Deadline,
		ActiveAssigneeIndex: task.ActiveAssigneeIndex,
		ProgressNotes:       task.ProgressNotes,
		AssigneeIDs:         make([]string, 0, len(task.AssigneeIDs)),
		AssigneeNames:       make([]string, 0, len(task.AssigneeIDs)),
	}

	if task.ClientID != nil {
		id := task.ClientID.String()
		resp.ClientID = &id
	}

	for _, id := range task.AssigneeIDs {
		if id == uuid.Nil {
			resp.AssigneeIDs = append(resp.AssigneeIDs, "")
			resp.AssigneeNames = append(resp.AssigneeNames, "")
			continue
		}
		resp.AssigneeIDs = append(resp.AssigneeIDs, id.String())
		// A dangling id renders as unresolved, never an error.
		user, err := h.userRepo.GetByID(c.Request.Context(), id)
		if err != nil || user == nil {
			resp.AssigneeNames = append(resp.AssigneeNames, "unknown")
			continue
		}
		resp.AssigneeNames = append(resp.AssigneeNames, user.Name)
	}

	resp.Unread = h.isUnread(c, task, actor)
	return resp
}

// isUnread reports whether the task has remarks newer than the actor's
// read receipt
func (h *TaskHandler) isUnread(c *gin.Context, task *model.Task, actor *model.User) bool {
	if len(task.ProgressNotes) == 0 {
		return false
	}
	receipt, err := h.receipts.Get(c.Request.Context(), actor.ID, task.ID)
	if err != nil || receipt == nil {
		return true
	}
	latest := task.ProgressNotes[len(task.ProgressNotes)-1].Timestamp
	return receipt.LastSeenAt.Before(latest)
}

// Create adds a task. Task creation is an admin action; employees only act
// on tasks already assigned to them.
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	kind := req.Kind
	if kind == "" {
		kind = model.TaskKindStandard
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Kind:        kind,
		Status:      string(taskflow.StatusToDo),
		Priority:    req.Priority,
		ContentType: req.ContentType,
		Deadline:    req.Deadline,
		CreatedBy:   actor.ID,
	}

	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
			return
		}
		task.ClientID = &clientID
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(c, task, actor))
}

// List returns all tasks in board order: deadline descending, then
// priority.
func (h *TaskHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	tasks, err := h.taskRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	taskflow.Sort(tasks)

	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, h.toResponse(c, &tasks[i], actor))
	}
	c.JSON(http.StatusOK, out)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.toResponse(c, task, actor))
}

// Update edits task fields, then mirrors the change onto a linked
// promotion.
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Priority = req.Priority
	task.ContentType = req.ContentType
	task.Deadline = req.Deadline
	if req.Kind != "" {
		task.Kind = req.Kind
	}
	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
			return
		}
		task.ClientID = &clientID
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if err := h.bridge.OnTaskChanged(c.Request.Context(), task, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Task saved but promotion sync failed"})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(c, task, actor))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// UpdateStatus runs a status change through the state machine. The machine
// validates the transition against the actor's role and queue position
// before anything is written.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := taskflow.Apply(task, actor, taskflow.Status(req.Status), h.now()); err != nil {
		if errors.Is(err, taskflow.ErrInvalidTransition) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change status"})
		return
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if err := h.bridge.OnTaskChanged(c.Request.Context(), task, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Task saved but promotion sync failed"})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(c, task, actor))
}

// AvailableStatuses returns the statuses the caller may select right now
func (h *TaskHandler) AvailableStatuses(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	available := taskflow.AvailableStatuses(task, actor)
	out := make([]string, 0, len(available))
	for _, s := range available {
		out = append(out, string(s))
	}
	c.JSON(http.StatusOK, gin.H{"statuses": out})
}

// SetAssignee writes one slot of the handoff queue
func (h *TaskHandler) SetAssignee(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	var req AssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID := uuid.Nil
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}
		user, err := h.userRepo.GetByID(c.Request.Context(), parsed)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		userID = parsed
	}

	if err := taskflow.SetAssignee(task, req.Slot, userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if err := h.bridge.OnTaskChanged(c.Request.Context(), task, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Task saved but promotion sync failed"})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(c, task, actor))
}

// AddRemark appends a progress note; the bridge mirrors it onto a linked
// promotion.
func (h *TaskHandler) AddRemark(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req RemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	authorName := "unknown"
	if user, err := h.userRepo.GetByID(c.Request.Context(), actor.ID); err == nil && user != nil {
		authorName = user.Name
	}

	remark := model.Remark{
		Text:       req.Text,
		AuthorID:   actor.ID,
		AuthorName: authorName,
		Timestamp:  h.now(),
		ImageRef:   req.ImageRef,
	}

	if err := h.bridge.AppendRemark(c.Request.Context(), promosync.OriginTask, id, remark); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add remark"})
		return
	}

	c.JSON(http.StatusCreated, remark)
}

// MarkSeen records that the caller has viewed the task's remark thread
func (h *TaskHandler) MarkSeen(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.receipts.Touch(c.Request.Context(), actor.ID, id, h.now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record read receipt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as seen"})
}

func (h *TaskHandler) loadTask(c *gin.Context) (*model.Task, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return nil, false
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return nil, false
	}
	return task, true
}
