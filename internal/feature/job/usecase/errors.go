// Package usecase implements the pipeline-stage consistency rules for job applications.
package usecase

import (
	"errors"

	"jobtracker_backend/internal/shared/apperr"
)

var (
	// ErrJobNotFound is returned by repositories when no job matches (id, userId).
	ErrJobNotFound = errors.New("job not found")

	// ErrNotFound is the caller-facing outcome for absent or foreign jobs.
	ErrNotFound = apperr.New(apperr.ErrNotFound, "job not found or unauthorized")

	// ErrInvalidReference is returned when a pipeline id cannot be resolved for the caller.
	ErrInvalidReference = apperr.New(apperr.ErrInvalidReference, "pipeline does not exist or is not owned by caller")

	// ErrMissingFields is returned when a new job lacks a required descriptive field.
	ErrMissingFields = apperr.New(apperr.ErrValidation, "name, company, role and location are required")
)

// invalidStage reports a stage that is not part of the pipeline the job would reference.
func invalidStage(stage, pipelineName string) error {
	return apperr.Newf(apperr.ErrInvalidStage, "stage %q is not part of pipeline %q", stage, pipelineName)
}
