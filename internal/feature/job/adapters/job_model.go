package adapters

import (
	"time"

	"jobtracker_backend/internal/feature/job/domain/entity"
)

// JobModel is the GORM model for the jobs table.
type JobModel struct {
	ID           string `gorm:"primaryKey;size:64"`
	UserID       string `gorm:"index:idx_jobs_user_stage,priority:1;size:64;not null"`
	PipelineID   string `gorm:"size:64;not null"`
	PipelineName string `gorm:"size:255"`
	Stage        string `gorm:"index:idx_jobs_user_stage,priority:2;size:255;not null"`
	Name         string `gorm:"size:255;not null"`
	Company      string `gorm:"size:255;not null"`
	Role         string `gorm:"size:255;not null"`
	Location     string `gorm:"size:255;not null"`
	Source       string `gorm:"size:255"`
	Notes        string `gorm:"type:text"`
	AppliedDate  time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

// TableName returns the table name for GORM.
func (JobModel) TableName() string {
	return "jobs"
}

// ToEntity converts the GORM model to a domain entity.
func (m *JobModel) ToEntity() *entity.JobApplication {
	return &entity.JobApplication{
		ID:           m.ID,
		UserID:       m.UserID,
		PipelineID:   m.PipelineID,
		PipelineName: m.PipelineName,
		Stage:        m.Stage,
		Name:         m.Name,
		Company:      m.Company,
		Role:         m.Role,
		Location:     m.Location,
		Source:       m.Source,
		Notes:        m.Notes,
		AppliedDate:  m.AppliedDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// JobModelFromEntity converts a domain entity to a GORM model.
func JobModelFromEntity(j *entity.JobApplication) *JobModel {
	return &JobModel{
		ID:           j.ID,
		UserID:       j.UserID,
		PipelineID:   j.PipelineID,
		PipelineName: j.PipelineName,
		Stage:        j.Stage,
		Name:         j.Name,
		Company:      j.Company,
		Role:         j.Role,
		Location:     j.Location,
		Source:       j.Source,
		Notes:        j.Notes,
		AppliedDate:  j.AppliedDate,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
