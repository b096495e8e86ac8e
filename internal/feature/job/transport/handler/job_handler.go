// Package handler provides HTTP handlers for the job feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"jobtracker_backend/internal/feature/job/domain/entity"
	"jobtracker_backend/internal/feature/job/transport/http/dto"
	"jobtracker_backend/internal/feature/job/usecase"
	"jobtracker_backend/internal/platform/http/httperr"
	jwtmw "jobtracker_backend/internal/platform/jwt"
	"jobtracker_backend/internal/shared/apperr"
)

// JobUsecase defines the job operations the handler depends on.
type JobUsecase interface {
	List(ctx context.Context, userID string) ([]entity.JobApplication, error)
	ListByStage(ctx context.Context, userID, stage string) ([]entity.JobApplication, error)
	Get(ctx context.Context, id, userID string) (*entity.JobApplication, error)
	Create(ctx context.Context, userID string, in usecase.CreateInput) (*entity.JobApplication, error)
	Update(ctx context.Context, id, userID string, p usecase.JobPatch) (*entity.JobApplication, error)
	Delete(ctx context.Context, id, userID string) error
}

// JobHandler handles /api/job requests.
type JobHandler struct {
	uc JobUsecase
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(uc JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func callerID(c *gin.Context) (string, bool) {
	userID := jwtmw.UserIDFrom(c)
	if userID == "" {
		httperr.Write(c, apperr.New(apperr.ErrUnauthenticated, "authentication required"))
		return "", false
	}
	return userID, true
}

// List handles GET /api/job.
func (h *JobHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	jobs, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(jobs))
}

// ListByStage handles GET /api/job/stage/:stage.
func (h *JobHandler) ListByStage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	jobs, err := h.uc.ListByStage(c.Request.Context(), userID, c.Param("stage"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(jobs))
}

// Get handles GET /api/job/:id.
func (h *JobHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	job, err := h.uc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(job))
}

// Create handles POST /api/job.
func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CreateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("job validation failed", "error", err, "user_id", userID)
		httperr.Write(c, bindError(err))
		return
	}

	job, err := h.uc.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		slog.Warn("job create rejected", "error", err, "user_id", userID)
		httperr.Write(c, err)
		return
	}
	slog.Info("job created", "job_id", job.ID, "pipeline_id", job.PipelineID, "user_id", userID)
	c.JSON(http.StatusOK, dto.FromEntity(job))
}

// Update handles PUT /api/job/:id.
func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.UpdateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("job update validation failed", "error", err, "user_id", userID)
		httperr.Write(c, apperr.New(apperr.ErrValidation, "invalid request"))
		return
	}

	job, err := h.uc.Update(c.Request.Context(), c.Param("id"), userID, req.ToPatch())
	if err != nil {
		slog.Warn("job update rejected", "error", err, "job_id", c.Param("id"), "user_id", userID)
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(job))
}

// Delete handles DELETE /api/job/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Job deleted"})
}

// bindError reports failed required-field checks as missing fields and any decode failure
// as an invalid request.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return usecase.ErrMissingFields
	}
	return apperr.New(apperr.ErrValidation, "invalid request")
}
