package handler

import (
	"net/http"

	"officeflow/internal/model"
	"officeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientHandler struct {
	clientRepo *repository.ClientRepository
	taskRepo   repository.TaskRepositoryInterface
}

func NewClientHandler(clientRepo *repository.ClientRepository, taskRepo repository.TaskRepositoryInterface) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo, taskRepo: taskRepo}
}

type ClientRequest struct {
	Name         string `json:"name" binding:"required"`
	Company      string `json:"company"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
}

type ClientResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Company      string `json:"company,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

func toClientResponse(c *model.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Company:      c.Company,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
	}
}

func (h *ClientHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	client := &model.Client{
		ID:           uuid.New(),
		Name:         req.Name,
		Company:      req.Company,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		OwnerID:      actor.ID,
	}

	if err := h.clientRepo.Create(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, toClientResponse(client))
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}

	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, toClientResponse(&clients[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	client.Name = req.Name
	client.Company = req.Company
	client.ContactEmail = req.ContactEmail
	client.ContactPhone = req.ContactPhone

	if err := h.clientRepo.Update(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) Delete(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	if err := h.clientRepo.Delete(c.Request.Context(), client.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

// GetTasks returns a client's tasks in board order
func (h *ClientHandler) GetTasks(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	tasks, err := h.taskRepo.ListByClient(c.Request.Context(), client.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *ClientHandler) loadClient(c *gin.Context) (*model.Client, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
		return nil, false
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return nil, false
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return nil, false
	}
	return client, true
}
