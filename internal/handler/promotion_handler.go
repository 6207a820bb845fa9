package handler

import (
	"errors"
	"net/http"
	"time"

	"officeflow/internal/model"
	"officeflow/internal/promosync"
	"officeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PromotionHandler struct {
	promoRepo repository.PromotionRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	bridge    SyncBridge
	now       func() time.Time
}

func NewPromotionHandler(
	promoRepo repository.PromotionRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	bridge SyncBridge,
) *PromotionHandler {
	return &PromotionHandler{
		promoRepo: promoRepo,
		userRepo:  userRepo,
		bridge:    bridge,
		now:       time.Now,
	}
}

type PromotionRequest struct {
	Kind       string     `json:"kind" binding:"required,oneof=paid plan"`
	ClientID   *string    `json:"client_id" binding:"omitempty,uuid"`
	Campaign   string     `json:"campaign" binding:"required"`
	AdType     string     `json:"ad_type"`
	Date       *time.Time `json:"date"`
	Budget     float64    `json:"budget"`
	Spent      float64    `json:"spent"`
	Status     string     `json:"status" binding:"omitempty,oneof=Scheduled Active Stopped 'To Do'"`
	AssignedTo string     `json:"assigned_to"`
}

type PromotionResponse struct {
	ID           string         `json:"id"`
	Kind         string         `json:"kind"`
	ClientID     *string        `json:"client_id,omitempty"`
	Campaign     string         `json:"campaign"`
	AdType       string         `json:"ad_type,omitempty"`
	Date         *time.Time     `json:"date,omitempty"`
	Budget       float64        `json:"budget"`
	Spent        float64        `json:"spent"`
	Status       string         `json:"status"`
	AssignedTo   string         `json:"assigned_to,omitempty"`
	Remarks      []model.Remark `json:"remarks"`
	LinkedTaskID *string        `json:"linked_task_id,omitempty"`
}

func toPromotionResponse(p *model.Promotion) PromotionResponse {
	resp := PromotionResponse{
		ID:         p.ID.String(),
		Kind:       p.Kind,
		Campaign:   p.Campaign,
		AdType:     p.AdType,
		Date:       p.Date,
		Budget:     p.Budget,
		Spent:      p.Spent,
		Status:     p.Status,
		AssignedTo: p.AssignedTo,
		Remarks:    p.Remarks,
	}
	if p.ClientID != nil {
		id := p.ClientID.String()
		resp.ClientID = &id
	}
	if p.LinkedTaskID != nil {
		id := p.LinkedTaskID.String()
		resp.LinkedTaskID = &id
	}
	return resp
}

// Create adds a promotion. A non-empty assigned_to immediately creates the
// mirrored task through the bridge.
func (h *PromotionHandler) Create(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.PromotionStatusScheduled
	}

	promo := &model.Promotion{
		ID:         uuid.New(),
		Kind:       req.Kind,
		Campaign:   req.Campaign,
		AdType:     req.AdType,
		Date:       req.Date,
		Budget:     req.Budget,
		Spent:      req.Spent,
		Status:     status,
		AssignedTo: req.AssignedTo,
	}

	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
			return
		}
		promo.ClientID = &clientID
	}

	if err := h.promoRepo.Create(c.Request.Context(), promo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion"})
		return
	}

	if err := h.bridge.OnPromotionChanged(c.Request.Context(), promo, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Promotion saved but task sync failed"})
		return
	}

	c.JSON(http.StatusCreated, toPromotionResponse(promo))
}

// List returns promotions, optionally filtered with ?kind=paid or
// ?kind=plan
func (h *PromotionHandler) List(c *gin.Context) {
	kind := c.Query("kind")
	if kind != "" && kind != model.PromotionKindPaid && kind != model.PromotionKindPlan {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion kind"})
		return
	}

	promos, err := h.promoRepo.List(c.Request.Context(), kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve promotions"})
		return
	}

	out := make([]PromotionResponse, 0, len(promos))
	for i := range promos {
		out = append(out, toPromotionResponse(&promos[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PromotionHandler) GetByID(c *gin.Context) {
	promo, ok := h.loadPromotion(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toPromotionResponse(promo))
}

// Update edits promotion fields and mirrors the change onto the linked
// task. Assigning a user to a previously unassigned promotion creates the
// task here.
func (h *PromotionHandler) Update(c *gin.Context) {
	promo, ok := h.loadPromotion(c)
	if !ok {
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	promo.Campaign = req.Campaign
	promo.AdType = req.AdType
	promo.Date = req.Date
	promo.Budget = req.Budget
	promo.Spent = req.Spent
	promo.AssignedTo = req.AssignedTo
	if req.Status != "" {
		promo.Status = req.Status
	}
	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
			return
		}
		promo.ClientID = &clientID
	}

	if err := h.promoRepo.Update(c.Request.Context(), promo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion"})
		return
	}

	if err := h.bridge.OnPromotionChanged(c.Request.Context(), promo, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Promotion saved but task sync failed"})
		return
	}

	c.JSON(http.StatusOK, toPromotionResponse(promo))
}

// Delete removes a promotion and cascades onto its linked task
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion ID format"})
		return
	}

	if err := h.bridge.DeletePromotion(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promotion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted"})
}

// AddRemark appends a remark; the bridge mirrors it onto the linked task
func (h *PromotionHandler) AddRemark(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion ID format"})
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

	if err := h.bridge.AppendRemark(c.Request.Context(), promosync.OriginPromotion, id, remark); err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add remark"})
		return
	}

	c.JSON(http.StatusCreated, remark)
}

func (h *PromotionHandler) loadPromotion(c *gin.Context) (*model.Promotion, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion ID format"})
		return nil, false
	}

	promo, err := h.promoRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve promotion"})
		return nil, false
	}
	return promo, true
}
