// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker_backend/internal/feature/auth/transport/http/dto"
	"jobtracker_backend/internal/feature/auth/usecase"
	"jobtracker_backend/internal/platform/http/httperr"
	"jobtracker_backend/internal/shared/apperr"
)

// AuthUsecase defines the use case for authentication operations.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, identifier, password string) (*usecase.LoginResult, error)
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register.
//   - 400 on malformed body or duplicate email/username
//   - 200 with the new user id on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		httperr.Write(c, apperr.New(apperr.ErrValidation, "invalid request"))
		return
	}

	userID, err := h.auth.Register(c.Request.Context(), req.Username, string(req.Email), req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "remote_addr", c.ClientIP())
		httperr.Write(c, err)
		return
	}

	slog.Info("user registered", "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.RegisterRes{Message: "User registered successfully", UserID: userID})
}

// Login handles POST /api/auth/login.
//   - 400 on malformed body
//   - 401 on bad credentials, never saying which part was wrong
//   - 200 with the token and profile on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		httperr.Write(c, apperr.New(apperr.ErrValidation, "invalid request"))
		return
	}
	identifier := req.Identifier()
	if identifier == "" {
		httperr.Write(c, apperr.New(apperr.ErrValidation, "email or username is required"))
		return
	}

	res, err := h.auth.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		httperr.Write(c, err)
		return
	}

	slog.Info("user login successful", "user_id", res.UserID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{
		Token:    res.Token,
		UserID:   res.UserID,
		Username: res.Username,
		Email:    res.Email,
	})
}
