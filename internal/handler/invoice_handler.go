package handler

import (
	"errors"
	"net/http"
	"time"

	"officeflow/internal/model"
	"officeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoiceHandler struct {
	invoiceRepo *repository.InvoiceRepository
	clientRepo  *repository.ClientRepository
}

func NewInvoiceHandler(invoiceRepo *repository.InvoiceRepository, clientRepo *repository.ClientRepository) *InvoiceHandler {
	return &InvoiceHandler{invoiceRepo: invoiceRepo, clientRepo: clientRepo}
}

type InvoiceRequest struct {
	ClientID string     `json:"client_id" binding:"required,uuid"`
	Number   string     `json:"number" binding:"required"`
	Amount   float64    `json:"amount" binding:"required,gt=0"`
	Status   string     `json:"status" binding:"omitempty,oneof=draft sent paid"`
	DueDate  *time.Time `json:"due_date"`
}

type InvoiceResponse struct {
	ID       string     `json:"id"`
	ClientID string     `json:"client_id"`
	Number   string     `json:"number"`
	Amount   float64    `json:"amount"`
	Status   string     `json:"status"`
	IssuedAt time.Time  `json:"issued_at"`
	DueDate  *time.Time `json:"due_date,omitempty"`
}

func toInvoiceResponse(inv *model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:       inv.ID.String(),
		ClientID: inv.ClientID.String(),
		Number:   inv.Number,
		Amount:   inv.Amount,
		Status:   inv.Status,
		IssuedAt: inv.IssuedAt,
		DueDate:  inv.DueDate,
	}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.InvoiceStatusDraft
	}

	invoice := &model.Invoice{
		ID:       uuid.New(),
		ClientID: clientID,
		Number:   req.Number,
		Amount:   req.Amount,
		Status:   status,
		IssuedAt: time.Now(),
		DueDate:  req.DueDate,
	}

	if err := h.invoiceRepo.Create(c.Request.Context(), invoice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	c.JSON(http.StatusCreated, toInvoiceResponse(invoice))
}

// List returns invoices, optionally filtered with ?client_id=
func (h *InvoiceHandler) List(c *gin.Context) {
	clientParam := c.Query("client_id")

	var (
		invoices []model.Invoice
		err      error
	)
	if clientParam != "" {
		clientID, parseErr := uuid.Parse(clientParam)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
			return
		}
		invoices, err = h.invoiceRepo.ListByClient(c.Request.Context(), clientID)
	} else {
		invoices, err = h.invoiceRepo.List(c.Request.Context())
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices"})
		return
	}

	out := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, toInvoiceResponse(&invoices[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoice, ok := h.loadInvoice(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

// UpdateStatus moves an invoice between draft, sent and paid
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	invoice, ok := h.loadInvoice(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=draft sent paid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	invoice.Status = req.Status
	if err := h.invoiceRepo.Update(c.Request.Context(), invoice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID format"})
		return
	}

	if err := h.invoiceRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}

func (h *InvoiceHandler) loadInvoice(c *gin.Context) (*model.Invoice, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID format"})
		return nil, false
	}

	invoice, err := h.invoiceRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		return nil, false
	}
	return invoice, true
}
