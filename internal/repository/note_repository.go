package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"officeflow/internal/model"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// NotePosition is one entry of a reorder request
type NotePosition struct {
	ID       uuid.UUID
	Position int
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	var note model.Note
	result := r.db.WithContext(ctx).First(&note, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, result.Error
	}
	return &note, nil
}

// List retrieves all notes in board order
func (r *NoteRepository) List(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.WithContext(ctx).Order("position").Find(&notes).Error
	return notes, err
}

// GetMaxPosition returns the highest position currently in use
func (r *NoteRepository) GetMaxPosition(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	return max, err
}

func (r *NoteRepository) Update(ctx context.Context, note *model.Note) error {
	result := r.db.WithContext(ctx).Save(note)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Note{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// Reorder applies a full set of note positions in one transaction, so a
// drag-and-drop rearrangement lands atomically
func (r *NoteRepository) Reorder(ctx context.Context, positions []NotePosition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range positions {
			result := tx.Model(&model.Note{}).
				Where("id = ?", p.ID).
				Update("position", p.Position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrNoteNotFound
			}
		}
		return nil
	})
}
