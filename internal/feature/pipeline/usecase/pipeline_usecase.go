package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtracker_backend/internal/feature/pipeline/domain/entity"
	"jobtracker_backend/internal/shared/apperr"
)

// PipelineRepository abstracts storage of user-owned pipelines.
// Every read and write is scoped by userID; the Default Pipeline is never stored.
type PipelineRepository interface {
	Find(ctx context.Context, userID string) ([]entity.Pipeline, error)
	// FindOne returns ErrPipelineNotFound when (id, userID) matches nothing.
	FindOne(ctx context.Context, id, userID string) (*entity.Pipeline, error)
	Insert(ctx context.Context, p *entity.Pipeline) error
	// Replace overwrites the pipeline matching (p.ID, p.UserID) and reports whether one matched.
	Replace(ctx context.Context, p *entity.Pipeline) (bool, error)
	// Delete removes the pipeline matching (id, userID) and reports whether one was deleted.
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// PipelineInput carries the caller-editable fields of a pipeline.
type PipelineInput struct {
	Name   string
	Stages []string
}

type pipelineUsecase struct {
	repo            PipelineRepository
	defaultPipeline entity.Pipeline
	now             func() time.Time
	newID           func() string
}

// NewPipelineUsecase creates a pipeline use case. defaultPipeline is returned to callers
// who own no pipeline and is never written.
func NewPipelineUsecase(repo PipelineRepository, defaultPipeline entity.Pipeline) *pipelineUsecase {
	return &pipelineUsecase{
		repo:            repo,
		defaultPipeline: defaultPipeline,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// List returns the caller's pipelines, or a single synthetic Default Pipeline when they own none.
func (u *pipelineUsecase) List(ctx context.Context, userID string) ([]entity.Pipeline, error) {
	pipelines, err := u.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pipelines: %w", err)
	}
	if len(pipelines) == 0 {
		return []entity.Pipeline{*u.defaultPipeline.Clone()}, nil
	}
	return pipelines, nil
}

// Get returns one of the caller's pipelines, or the Default Pipeline for its id.
func (u *pipelineUsecase) Get(ctx context.Context, id, userID string) (*entity.Pipeline, error) {
	if id == u.defaultPipeline.ID {
		return u.defaultPipeline.Clone(), nil
	}
	p, err := u.repo.FindOne(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrPipelineNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load pipeline: %w", err)
	}
	return p, nil
}

// Create stores a new pipeline owned by userID.
func (u *pipelineUsecase) Create(ctx context.Context, userID string, in PipelineInput) (*entity.Pipeline, error) {
	name, stages, err := normalize(in)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	p := &entity.Pipeline{
		ID:        u.newID(),
		UserID:    userID,
		Name:      name,
		Stages:    stages,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}
	return p, nil
}

// Update replaces the name and stages of one of the caller's pipelines.
// Jobs referencing the pipeline keep their stored name and stage until they are next written.
func (u *pipelineUsecase) Update(ctx context.Context, id, userID string, in PipelineInput) (*entity.Pipeline, error) {
	if id == u.defaultPipeline.ID {
		return nil, ErrDefaultPipelineReadOnly
	}
	name, stages, err := normalize(in)
	if err != nil {
		return nil, err
	}

	existing, err := u.repo.FindOne(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrPipelineNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load pipeline: %w", err)
	}

	existing.Name = name
	existing.Stages = stages
	existing.UpdatedAt = u.now().UTC()

	matched, err := u.repo.Replace(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update pipeline: %w", err)
	}
	if !matched {
		return nil, ErrNotFound
	}
	return existing, nil
}

// Delete removes one of the caller's pipelines. Jobs referencing it are left as they are.
func (u *pipelineUsecase) Delete(ctx context.Context, id, userID string) error {
	if id == u.defaultPipeline.ID {
		return ErrDefaultPipelineReadOnly
	}
	deleted, err := u.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete pipeline: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// normalize trims the name and stages and enforces a non-empty list of distinct stages.
func normalize(in PipelineInput) (string, []string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", nil, apperr.New(apperr.ErrValidation, "pipeline name is required")
	}
	if len(in.Stages) == 0 {
		return "", nil, apperr.New(apperr.ErrValidation, "at least one stage is required")
	}

	stages := make([]string, 0, len(in.Stages))
	seen := make(map[string]struct{}, len(in.Stages))
	for _, s := range in.Stages {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", nil, apperr.New(apperr.ErrValidation, "stage names must not be blank")
		}
		if _, dup := seen[s]; dup {
			return "", nil, apperr.Newf(apperr.ErrValidation, "duplicate stage %q", s)
		}
		seen[s] = struct{}{}
		stages = append(stages, s)
	}
	return name, stages, nil
}
