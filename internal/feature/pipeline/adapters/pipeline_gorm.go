// Package adapters provides repository implementations for the pipeline feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobtracker_backend/internal/feature/pipeline/domain/entity"
	"jobtracker_backend/internal/feature/pipeline/usecase"
)

// pipelineGorm is the relational implementation of PipelineRepository.
type pipelineGorm struct {
	db *gorm.DB
}

var _ usecase.PipelineRepository = (*pipelineGorm)(nil)

// NewPipelineGorm creates a new instance of pipelineGorm.
func NewPipelineGorm(db *gorm.DB) *pipelineGorm {
	return &pipelineGorm{db: db}
}

// Find returns every pipeline owned by userID, oldest first.
func (r *pipelineGorm) Find(ctx context.Context, userID string) ([]entity.Pipeline, error) {
	var models []PipelineModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Pipeline, len(models))
	for i := range models {
		out[i] = *models[i].ToEntity()
	}
	return out, nil
}

// FindOne returns usecase.ErrPipelineNotFound when (id, userID) matches no row.
func (r *pipelineGorm) FindOne(ctx context.Context, id, userID string) (*entity.Pipeline, error) {
	var m PipelineModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPipelineNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Insert stores a new pipeline.
func (r *pipelineGorm) Insert(ctx context.Context, p *entity.Pipeline) error {
	return r.db.WithContext(ctx).Create(PipelineModelFromEntity(p)).Error
}

// Replace overwrites the row matching (p.ID, p.UserID).
func (r *pipelineGorm) Replace(ctx context.Context, p *entity.Pipeline) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&PipelineModel{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Select("name", "stages", "created_at", "updated_at").
		Updates(PipelineModelFromEntity(p))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the row matching (id, userID).
func (r *pipelineGorm) Delete(ctx context.Context, id, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&PipelineModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
