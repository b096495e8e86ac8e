// Package entity defines the domain entities for the pipeline feature.
package entity

import (
	"slices"
	"time"
)

// Default Pipeline identity. The id is shared by every user who has not created a pipeline.
const (
	DefaultPipelineID   = "000000000000000000000001"
	DefaultPipelineName = "Default Pipeline"
)

var defaultStages = []string{"Wishlist", "Applied", "Screening", "Interview", "Offer", "Rejected"}

// Pipeline is an ordered workflow template owned by a single user.
type Pipeline struct {
	ID     string
	UserID string
	Name   string
	// Stages is non-empty and holds distinct names in display order.
	Stages    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDefaultPipeline builds the Default Pipeline value. It has no owner and is never persisted.
func NewDefaultPipeline() Pipeline {
	return Pipeline{
		ID:     DefaultPipelineID,
		Name:   DefaultPipelineName,
		Stages: slices.Clone(defaultStages),
	}
}

// IsDefault reports whether p carries the Default Pipeline id.
func (p Pipeline) IsDefault() bool {
	return p.ID == DefaultPipelineID
}

// HasStage reports whether stage is one of p's stages. Matching is exact and case-sensitive.
func (p Pipeline) HasStage(stage string) bool {
	return slices.Contains(p.Stages, stage)
}

// FirstStage returns the first stage, or "" for a pipeline without stages.
func (p Pipeline) FirstStage() string {
	if len(p.Stages) == 0 {
		return ""
	}
	return p.Stages[0]
}

// Clone returns a deep copy so callers cannot mutate shared stage slices.
func (p Pipeline) Clone() *Pipeline {
	p.Stages = slices.Clone(p.Stages)
	return &p
}
