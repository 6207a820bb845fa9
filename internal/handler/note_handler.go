package handler

import (
	"errors"
	"net/http"

	"officeflow/internal/model"
	"officeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NoteHandler struct {
	noteRepo *repository.NoteRepository
}

func NewNoteHandler(noteRepo *repository.NoteRepository) *NoteHandler {
	return &NoteHandler{noteRepo: noteRepo}
}

type NoteRequest struct {
	Text     string `json:"text" binding:"required"`
	Color    string `json:"color"`
	Position *int   `json:"position"`
}

type NoteResponse struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Color    string `json:"color,omitempty"`
	Position int    `json:"position"`
}

type ReorderNotesRequest struct {
	Notes []struct {
		ID       string `json:"id" binding:"required,uuid"`
		Position int    `json:"position"`
	} `json:"notes" binding:"required"`
}

func toNoteResponse(n *model.Note) NoteResponse {
	return NoteResponse{
		ID:       n.ID.String(),
		Text:     n.Text,
		Color:    n.Color,
		Position: n.Position,
	}
}

func (h *NoteHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		maxPosition, err := h.noteRepo.GetMaxPosition(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine note position"})
			return
		}
		position = maxPosition + 1
	}

	note := &model.Note{
		ID:        uuid.New(),
		Text:      req.Text,
		Color:     req.Color,
		Position:  position,
		CreatedBy: actor.ID,
	}

	if err := h.noteRepo.Create(c.Request.Context(), note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, toNoteResponse(note))
}

func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.noteRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notes"})
		return
	}

	out := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *NoteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID format"})
		return
	}

	note, err := h.noteRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	note.Text = req.Text
	note.Color = req.Color
	if req.Position != nil {
		note.Position = *req.Position
	}

	if err := h.noteRepo.Update(c.Request.Context(), note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
		return
	}

	c.JSON(http.StatusOK, toNoteResponse(note))
}

func (h *NoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID format"})
		return
	}

	if err := h.noteRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}

// Reorder applies a drag-and-drop rearrangement in one transaction
func (h *NoteHandler) Reorder(c *gin.Context) {
	var req ReorderNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	positions := make([]repository.NotePosition, 0, len(req.Notes))
	for _, n := range req.Notes {
		id, err := uuid.Parse(n.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID format"})
			return
		}
		positions = append(positions, repository.NotePosition{ID: id, Position: n.Position})
	}

	if err := h.noteRepo.Reorder(c.Request.Context(), positions); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notes reordered"})
}
