// Package dto defines data transfer objects for the pipeline feature's HTTP transport layer.
package dto

import (
	"time"

	"jobtracker_backend/internal/feature/pipeline/domain/entity"
)

// PipelineReq is the body of create and update requests. Update replaces both fields.
type PipelineReq struct {
	Name   string   `json:"name" binding:"required"`
	Stages []string `json:"stages" binding:"required,min=1"`
}

// PipelineRes is the JSON form of a pipeline. The Default Pipeline has no owner or timestamps.
type PipelineRes struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId,omitempty"`
	Name      string     `json:"name"`
	Stages    []string   `json:"stages"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// MessageRes is a plain confirmation body.
type MessageRes struct {
	Message string `json:"message"`
}

// FromEntity converts a pipeline into its response form.
func FromEntity(p *entity.Pipeline) PipelineRes {
	return PipelineRes{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Stages:    p.Stages,
		CreatedAt: timePtr(p.CreatedAt),
		UpdatedAt: timePtr(p.UpdatedAt),
	}
}

// FromEntities converts a list of pipelines, never returning nil.
func FromEntities(ps []entity.Pipeline) []PipelineRes {
	out := make([]PipelineRes, 0, len(ps))
	for i := range ps {
		out = append(out, FromEntity(&ps[i]))
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
