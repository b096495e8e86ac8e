// Package dto defines data transfer objects for the job feature's HTTP transport layer.
package dto

import (
	"time"

	"jobtracker_backend/internal/feature/job/domain/entity"
	"jobtracker_backend/internal/feature/job/usecase"
	"jobtracker_backend/internal/shared/patch"
)

// CreateJobReq is the body of POST /api/job.
// Owner and pipeline name are never read from the body.
type CreateJobReq struct {
	PipelineID  string     `json:"pipelineId"`
	Stage       string     `json:"stage"`
	Name        string     `json:"name" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Role        string     `json:"role" binding:"required"`
	Location    string     `json:"location" binding:"required"`
	Source      string     `json:"source"`
	Notes       string     `json:"notes"`
	AppliedDate *time.Time `json:"appliedDate"`
}

// ToInput converts the request into use case input.
func (r CreateJobReq) ToInput() usecase.CreateInput {
	return usecase.CreateInput{
		PipelineID:  r.PipelineID,
		Stage:       r.Stage,
		Name:        r.Name,
		Company:     r.Company,
		Role:        r.Role,
		Location:    r.Location,
		Source:      r.Source,
		Notes:       r.Notes,
		AppliedDate: r.AppliedDate,
	}
}

// UpdateJobReq is the body of PUT /api/job/:id. Every field is optional.
type UpdateJobReq struct {
	PipelineID  patch.Optional[string]    `json:"pipelineId"`
	Stage       patch.Optional[string]    `json:"stage"`
	Name        patch.Optional[string]    `json:"name"`
	Company     patch.Optional[string]    `json:"company"`
	Role        patch.Optional[string]    `json:"role"`
	Location    patch.Optional[string]    `json:"location"`
	Source      patch.Optional[string]    `json:"source"`
	Notes       patch.Optional[string]    `json:"notes"`
	AppliedDate patch.Optional[time.Time] `json:"appliedDate"`
}

// ToPatch converts the request into a use case patch.
func (r UpdateJobReq) ToPatch() usecase.JobPatch {
	return usecase.JobPatch{
		PipelineID:  r.PipelineID,
		Stage:       r.Stage,
		Name:        r.Name,
		Company:     r.Company,
		Role:        r.Role,
		Location:    r.Location,
		Source:      r.Source,
		Notes:       r.Notes,
		AppliedDate: r.AppliedDate,
	}
}

// JobRes is the JSON form of a job application.
type JobRes struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	PipelineID   string    `json:"pipelineId"`
	PipelineName string    `json:"pipelineName"`
	Stage        string    `json:"stage"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	Role         string    `json:"role"`
	Location     string    `json:"location"`
	Source       string    `json:"source"`
	Notes        string    `json:"notes,omitempty"`
	AppliedDate  time.Time `json:"appliedDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MessageRes is a plain confirmation body.
type MessageRes struct {
	Message string `json:"message"`
}

// FromEntity converts a job into its response form.
func FromEntity(j *entity.JobApplication) JobRes {
	return JobRes{
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

// FromEntities converts a list of jobs, never returning nil.
func FromEntities(js []entity.JobApplication) []JobRes {
	out := make([]JobRes, 0, len(js))
	for i := range js {
		out = append(out, FromEntity(&js[i]))
	}
	return out
}
