package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"officeflow/internal/model"
)

type PromotionRepository struct {
	db *gorm.DB
}

type PromotionRepositoryInterface interface {
	Create(ctx context.Context, promo *model.Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error)
	List(ctx context.Context, kind string) ([]model.Promotion, error)
	FindByLinkedTaskID(ctx context.Context, taskID uuid.UUID) (*model.Promotion, error)
	Update(ctx context.Context, promo *model.Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ PromotionRepositoryInterface = (*PromotionRepository)(nil)

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// Create adds a new promotion to the database
func (r *PromotionRepository) Create(ctx context.Context, promo *model.Promotion) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

// GetByID retrieves a promotion by its ID
func (r *PromotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	var promo model.Promotion
	result := r.db.WithContext(ctx).First(&promo, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, result.Error
	}
	return &promo, nil
}

// List retrieves promotions, optionally filtered by kind ("paid" or "plan")
func (r *PromotionRepository) List(ctx context.Context, kind string) ([]model.Promotion, error) {
	var promos []model.Promotion
	query := r.db.WithContext(ctx).Order("date DESC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

// FindByLinkedTaskID retrieves the promotion mirroring the given task
func (r *PromotionRepository) FindByLinkedTaskID(ctx context.Context, taskID uuid.UUID) (*model.Promotion, error) {
	var promo model.Promotion
	result := r.db.WithContext(ctx).First(&promo, "linked_task_id = ?", taskID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, result.Error
	}
	return &promo, nil
}

// Update updates an existing promotion
func (r *PromotionRepository) Update(ctx context.Context, promo *model.Promotion) error {
	result := r.db.WithContext(ctx).Save(promo)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

// Delete removes a promotion by its ID
func (r *PromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Promotion{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}
