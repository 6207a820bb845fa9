package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"officeflow/internal/model"
)

type ReadReceiptRepository struct {
	db *gorm.DB
}

type ReadReceiptRepositoryInterface interface {
	Touch(ctx context.Context, userID, entityID uuid.UUID, seenAt time.Time) error
	Get(ctx context.Context, userID, entityID uuid.UUID) (*model.ReadReceipt, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.ReadReceipt, error)
}

var _ ReadReceiptRepositoryInterface = (*ReadReceiptRepository)(nil)

func NewReadReceiptRepository(db *gorm.DB) *ReadReceiptRepository {
	return &ReadReceiptRepository{db: db}
}

// Touch records that the user has seen the entity's remark thread now.
// Create-or-update runs in a transaction to avoid racing duplicate rows.
func (r *ReadReceiptRepository) Touch(ctx context.Context, userID, entityID uuid.UUID, seenAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.ReadReceipt
		err := tx.Where("user_id = ? AND entity_id = ?", userID, entityID).First(&existing).Error

		if err == nil {
			existing.LastSeenAt = seenAt
			return tx.Save(&existing).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&model.ReadReceipt{
			UserID:     userID,
			EntityID:   entityID,
			LastSeenAt: seenAt,
		}).Error
	})
}

// Get returns the receipt for (user, entity), or nil when the user has
// never opened the thread
func (r *ReadReceiptRepository) Get(ctx context.Context, userID, entityID uuid.UUID) (*model.ReadReceipt, error) {
	var receipt model.ReadReceipt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entity_id = ?", userID, entityID).
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListForUser returns all receipts of a user, used to compute unread
// indicators for a whole list view in one query
func (r *ReadReceiptRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.ReadReceipt, error) {
	var receipts []model.ReadReceipt
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&receipts).Error
	return receipts, err
}
