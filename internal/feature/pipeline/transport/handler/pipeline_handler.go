// Package handler provides HTTP handlers for the pipeline feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker_backend/internal/feature/pipeline/domain/entity"
	"jobtracker_backend/internal/feature/pipeline/transport/http/dto"
	"jobtracker_backend/internal/feature/pipeline/usecase"
	"jobtracker_backend/internal/platform/http/httperr"
	jwtmw "jobtracker_backend/internal/platform/jwt"
	"jobtracker_backend/internal/shared/apperr"
)

// PipelineUsecase defines the pipeline operations the handler depends on.
type PipelineUsecase interface {
	List(ctx context.Context, userID string) ([]entity.Pipeline, error)
	Get(ctx context.Context, id, userID string) (*entity.Pipeline, error)
	Create(ctx context.Context, userID string, in usecase.PipelineInput) (*entity.Pipeline, error)
	Update(ctx context.Context, id, userID string, in usecase.PipelineInput) (*entity.Pipeline, error)
	Delete(ctx context.Context, id, userID string) error
}

// PipelineHandler handles /api/pipeline requests.
type PipelineHandler struct {
	uc PipelineUsecase
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(uc PipelineUsecase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

// callerID returns the authenticated user id or writes a 401.
func callerID(c *gin.Context) (string, bool) {
	userID := jwtmw.UserIDFrom(c)
	if userID == "" {
		httperr.Write(c, apperr.New(apperr.ErrUnauthenticated, "authentication required"))
		return "", false
	}
	return userID, true
}

// List handles GET /api/pipeline.
func (h *PipelineHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pipelines, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(pipelines))
}

// Get handles GET /api/pipeline/:id.
func (h *PipelineHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	p, err := h.uc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(p))
}

// Create handles POST /api/pipeline.
func (h *PipelineHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.PipelineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("pipeline validation failed", "error", err, "user_id", userID)
		httperr.Write(c, apperr.New(apperr.ErrValidation, "name and at least one stage are required"))
		return
	}

	p, err := h.uc.Create(c.Request.Context(), userID, usecase.PipelineInput{Name: req.Name, Stages: req.Stages})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	slog.Info("pipeline created", "pipeline_id", p.ID, "user_id", userID)
	c.JSON(http.StatusOK, dto.FromEntity(p))
}

// Update handles PUT /api/pipeline/:id.
func (h *PipelineHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.PipelineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("pipeline validation failed", "error", err, "user_id", userID)
		httperr.Write(c, apperr.New(apperr.ErrValidation, "name and at least one stage are required"))
		return
	}

	p, err := h.uc.Update(c.Request.Context(), c.Param("id"), userID, usecase.PipelineInput{Name: req.Name, Stages: req.Stages})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(p))
}

// Delete handles DELETE /api/pipeline/:id.
func (h *PipelineHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		httperr.Write(c, err)
		return
	}
	slog.Info("pipeline deleted", "pipeline_id", c.Param("id"), "user_id", userID)
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Pipeline deleted"})
}
