package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"officeflow/internal/middleware"
	"officeflow/internal/model"
)

// SyncBridge is the slice of the promotion sync bridge the handlers call.
type SyncBridge interface {
	OnTaskChanged(ctx context.Context, task *model.Task, syncFromPromotion bool) error
	OnPromotionChanged(ctx context.Context, promo *model.Promotion, syncFromTask bool) error
	DeletePromotion(ctx context.Context, promoID uuid.UUID) error
	AppendRemark(ctx context.Context, origin string, id uuid.UUID, remark model.Remark) error
}

// currentActor rebuilds the acting user from the auth middleware's context
// values. Only id and role are needed for gating; the full record is
// loaded only when a display name is required.
func currentActor(c *gin.Context) (*model.User, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return nil, false
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		return nil, false
	}

	role, _ := c.Get(middleware.UserRoleKey)
	roleStr, _ := role.(string)

	return &model.User{ID: id, Role: roleStr}, true
}
