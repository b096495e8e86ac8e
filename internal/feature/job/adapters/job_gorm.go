// Package adapters provides repository implementations for the job feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobtracker_backend/internal/feature/job/domain/entity"
	"jobtracker_backend/internal/feature/job/usecase"
)

// replaceColumns is every column except the (id, user_id) key.
var replaceColumns = []string{
	"pipeline_id", "pipeline_name", "stage", "name", "company", "role",
	"location", "source", "notes", "applied_date", "created_at", "updated_at",
}

// jobGorm is the relational implementation of JobRepository.
type jobGorm struct {
	db *gorm.DB
}

var _ usecase.JobRepository = (*jobGorm)(nil)

// NewJobGorm creates a new instance of jobGorm.
func NewJobGorm(db *gorm.DB) *jobGorm {
	return &jobGorm{db: db}
}

func (r *jobGorm) Find(ctx context.Context, userID string) ([]entity.JobApplication, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *jobGorm) FindByStage(ctx context.Context, userID, stage string) ([]entity.JobApplication, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ? AND stage = ?", userID, stage))
}

func (r *jobGorm) find(q *gorm.DB) ([]entity.JobApplication, error) {
	var models []JobModel
	if err := q.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.JobApplication, len(models))
	for i := range models {
		out[i] = *models[i].ToEntity()
	}
	return out, nil
}

// FindOne returns usecase.ErrJobNotFound when (id, userID) matches no row.
func (r *jobGorm) FindOne(ctx context.Context, id, userID string) (*entity.JobApplication, error) {
	var m JobModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrJobNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

func (r *jobGorm) Insert(ctx context.Context, job *entity.JobApplication) error {
	return r.db.WithContext(ctx).Create(JobModelFromEntity(job)).Error
}

// Replace overwrites the row matching (job.ID, job.UserID).
func (r *jobGorm) Replace(ctx context.Context, job *entity.JobApplication) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&JobModel{}).
		Where("id = ? AND user_id = ?", job.ID, job.UserID).
		Select(replaceColumns).
		Updates(JobModelFromEntity(job))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *jobGorm) Delete(ctx context.Context, id, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&JobModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
