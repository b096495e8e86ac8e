package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtracker_backend/internal/feature/job/domain/entity"
	pipelinedomain "jobtracker_backend/internal/feature/pipeline/domain"
	pipelineentity "jobtracker_backend/internal/feature/pipeline/domain/entity"
	"jobtracker_backend/internal/shared/patch"
)

// JobRepository abstracts storage of job applications.
// Every operation is scoped by userID so one user can never read or touch another's jobs.
type JobRepository interface {
	Find(ctx context.Context, userID string) ([]entity.JobApplication, error)
	FindByStage(ctx context.Context, userID, stage string) ([]entity.JobApplication, error)
	// FindOne returns ErrJobNotFound when (id, userID) matches nothing.
	FindOne(ctx context.Context, id, userID string) (*entity.JobApplication, error)
	Insert(ctx context.Context, job *entity.JobApplication) error
	// Replace overwrites the job matching (job.ID, job.UserID) and reports whether one matched.
	Replace(ctx context.Context, job *entity.JobApplication) (bool, error)
	// Delete removes the job matching (id, userID) and reports whether one was deleted.
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// PipelineReader loads a caller-owned pipeline.
// It returns pipelinedomain.ErrPipelineNotFound when (id, userID) matches nothing.
type PipelineReader interface {
	FindOne(ctx context.Context, id, userID string) (*pipelineentity.Pipeline, error)
}

// CreateInput carries the caller-supplied fields of a new job.
// Empty PipelineID selects the Default Pipeline; empty Stage selects the pipeline's first stage.
type CreateInput struct {
	PipelineID  string
	Stage       string
	Name        string
	Company     string
	Role        string
	Location    string
	Source      string
	Notes       string
	AppliedDate *time.Time
}

// JobPatch is a sparse update. Absent and blank values leave the stored field unchanged.
type JobPatch struct {
	PipelineID  patch.Optional[string]
	Stage       patch.Optional[string]
	Name        patch.Optional[string]
	Company     patch.Optional[string]
	Role        patch.Optional[string]
	Location    patch.Optional[string]
	Source      patch.Optional[string]
	Notes       patch.Optional[string]
	AppliedDate patch.Optional[time.Time]
}

type jobUsecase struct {
	jobs            JobRepository
	pipelines       PipelineReader
	defaultPipeline pipelineentity.Pipeline
	now             func() time.Time
	newID           func() string
}

// NewJobUsecase creates the job use case. defaultPipeline is shared read-only by every request.
func NewJobUsecase(jobs JobRepository, pipelines PipelineReader, defaultPipeline pipelineentity.Pipeline) *jobUsecase {
	return &jobUsecase{
		jobs:            jobs,
		pipelines:       pipelines,
		defaultPipeline: defaultPipeline,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// List returns every job owned by userID.
func (u *jobUsecase) List(ctx context.Context, userID string) ([]entity.JobApplication, error) {
	jobs, err := u.jobs.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ListByStage returns the caller's jobs whose stage equals stage exactly.
func (u *jobUsecase) ListByStage(ctx context.Context, userID, stage string) ([]entity.JobApplication, error) {
	jobs, err := u.jobs.FindByStage(ctx, userID, strings.TrimSpace(stage))
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by stage: %w", err)
	}
	return jobs, nil
}

// Get returns one of the caller's jobs. A job owned by someone else is reported as not found.
func (u *jobUsecase) Get(ctx context.Context, id, userID string) (*entity.JobApplication, error) {
	job, err := u.jobs.FindOne(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	return job, nil
}

// Create stores a new job for userID.
//
// The pipeline is the one named by PipelineID (which must be owned by the caller) or the
// Default Pipeline. A requested stage that is not part of that pipeline falls back to its
// first stage instead of failing.
func (u *jobUsecase) Create(ctx context.Context, userID string, in CreateInput) (*entity.JobApplication, error) {
	name, company := strings.TrimSpace(in.Name), strings.TrimSpace(in.Company)
	role, location := strings.TrimSpace(in.Role), strings.TrimSpace(in.Location)
	if name == "" || company == "" || role == "" || location == "" {
		return nil, ErrMissingFields
	}

	p := u.defaultPipeline.Clone()
	if pipelineID := strings.TrimSpace(in.PipelineID); pipelineID != "" {
		resolved, err := u.resolve(ctx, pipelineID, userID)
		if err != nil {
			return nil, err
		}
		p = resolved
	}

	stage := strings.TrimSpace(in.Stage)
	if stage == "" || !p.HasStage(stage) {
		stage = p.FirstStage()
	}

	now := u.now().UTC()
	applied := now
	if in.AppliedDate != nil && !in.AppliedDate.IsZero() {
		applied = in.AppliedDate.UTC()
	}

	job := &entity.JobApplication{
		ID:           u.newID(),
		UserID:       userID,
		PipelineID:   p.ID,
		PipelineName: p.Name,
		Stage:        stage,
		Name:         name,
		Company:      company,
		Role:         role,
		Location:     location,
		Source:       strings.TrimSpace(in.Source),
		Notes:        in.Notes,
		AppliedDate:  applied,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.jobs.Insert(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// Update applies a sparse patch to one of the caller's jobs.
//
// A supplied pipelineId must resolve for the caller. A supplied stage must belong to the
// effective pipeline. Without a stage the current one is kept when still valid, otherwise
// the pipeline's first stage is used. pipelineName is refreshed from the pipeline on
// every write.
func (u *jobUsecase) Update(ctx context.Context, id, userID string, p JobPatch) (*entity.JobApplication, error) {
	job, err := u.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	setText(&job.Name, p.Name)
	setText(&job.Company, p.Company)
	setText(&job.Role, p.Role)
	setText(&job.Location, p.Location)
	setText(&job.Source, p.Source)
	if notes, ok := p.Notes.Get(); ok && strings.TrimSpace(notes) != "" {
		job.Notes = notes
	}
	if applied, ok := p.AppliedDate.Get(); ok && !applied.IsZero() {
		job.AppliedDate = applied.UTC()
	}

	if err := u.reconcile(ctx, job, userID, p); err != nil {
		return nil, err
	}

	job.UserID = userID
	job.UpdatedAt = u.now().UTC()

	matched, err := u.jobs.Replace(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	if !matched {
		return nil, ErrNotFound
	}
	return job, nil
}

// reconcile resolves the effective pipeline for an update and brings the job's pipeline
// reference, denormalized name and stage in line with it.
func (u *jobUsecase) reconcile(ctx context.Context, job *entity.JobApplication, userID string, p JobPatch) error {
	stage, stageGiven := text(p.Stage)
	pipelineID, pipelineGiven := text(p.PipelineID)

	var (
		target *pipelineentity.Pipeline
		err    error
	)
	if pipelineGiven {
		if target, err = u.resolve(ctx, pipelineID, userID); err != nil {
			return err
		}
	} else {
		target, err = u.resolve(ctx, job.PipelineID, userID)
		if err != nil {
			// The stored pipeline is gone. Leave the reference alone unless the caller
			// asked for a stage we can no longer validate.
			if errors.Is(err, ErrInvalidReference) && !stageGiven {
				return nil
			}
			return err
		}
	}

	switch {
	case stageGiven:
		if !target.HasStage(stage) {
			return invalidStage(stage, target.Name)
		}
		job.Stage = stage
	case !target.HasStage(job.Stage):
		job.Stage = target.FirstStage()
	}
	job.PipelineID = target.ID
	job.PipelineName = target.Name
	return nil
}

// Delete removes one of the caller's jobs.
func (u *jobUsecase) Delete(ctx context.Context, id, userID string) error {
	deleted, err := u.jobs.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// resolve loads the pipeline id for userID, mapping the Default Pipeline id to the shared value.
func (u *jobUsecase) resolve(ctx context.Context, pipelineID, userID string) (*pipelineentity.Pipeline, error) {
	if pipelineID == u.defaultPipeline.ID {
		return u.defaultPipeline.Clone(), nil
	}
	p, err := u.pipelines.FindOne(ctx, pipelineID, userID)
	if err != nil {
		if errors.Is(err, pipelinedomain.ErrPipelineNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("failed to resolve pipeline: %w", err)
	}
	return p, nil
}

// text returns the trimmed value of o and whether it is present and non-blank.
func text(o patch.Optional[string]) (string, bool) {
	v, ok := o.Get()
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func setText(dst *string, o patch.Optional[string]) {
	if v, ok := text(o); ok {
		*dst = v
	}
}
