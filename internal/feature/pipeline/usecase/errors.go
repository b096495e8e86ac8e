// Package usecase implements pipeline management for the pipeline feature.
package usecase

import (
	"jobtracker_backend/internal/feature/pipeline/domain"
	"jobtracker_backend/internal/shared/apperr"
)

var (
	// ErrPipelineNotFound is returned by repositories when no pipeline matches (id, userId).
	ErrPipelineNotFound = domain.ErrPipelineNotFound

	// ErrNotFound is the caller-facing outcome for absent or foreign pipelines.
	ErrNotFound = apperr.New(apperr.ErrNotFound, "pipeline not found or unauthorized")

	// ErrDefaultPipelineReadOnly rejects edits to the Default Pipeline.
	ErrDefaultPipelineReadOnly = apperr.New(apperr.ErrValidation, "the default pipeline cannot be modified or deleted")
)
