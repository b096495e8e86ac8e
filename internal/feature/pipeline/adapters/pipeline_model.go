package adapters

import (
	"slices"
	"time"

	"jobtracker_backend/internal/feature/pipeline/domain/entity"
)

// PipelineModel is the GORM model for the pipelines table.
// Timestamps are stamped by the use case, so gorm's auto timestamps are off.
type PipelineModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"index;size:64;not null"`
	Name      string    `gorm:"size:255;not null"`
	Stages    []string  `gorm:"serializer:json;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName returns the table name for GORM.
func (PipelineModel) TableName() string {
	return "pipelines"
}

// ToEntity converts the GORM model to a domain entity.
func (m *PipelineModel) ToEntity() *entity.Pipeline {
	return &entity.Pipeline{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Stages:    slices.Clone(m.Stages),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PipelineModelFromEntity converts a domain entity to a GORM model.
func PipelineModelFromEntity(p *entity.Pipeline) *PipelineModel {
	return &PipelineModel{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Stages:    slices.Clone(p.Stages),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
