package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	authhandler "jobtracker_backend/internal/feature/auth/transport/handler"
	jobhandler "jobtracker_backend/internal/feature/job/transport/handler"
	"jobtracker_backend/internal/feature/pipeline/domain/entity"
	pipelinehandler "jobtracker_backend/internal/feature/pipeline/transport/handler"
	"jobtracker_backend/internal/feature/pipeline/usecase"
	jwtmw "jobtracker_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubVerifier accepts the tokens listed in claims.
type stubVerifier map[string]*jwtmw.Claims

func (s stubVerifier) Verify(token string, now time.Time) (*jwtmw.Claims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

// stubPipelines answers List only.
type stubPipelines struct{}

func (stubPipelines) List(ctx context.Context, userID string) ([]entity.Pipeline, error) {
	return []entity.Pipeline{entity.NewDefaultPipeline()}, nil
}

func (stubPipelines) Get(ctx context.Context, id, userID string) (*entity.Pipeline, error) {
	return nil, usecase.ErrNotFound
}

func (stubPipelines) Create(ctx context.Context, userID string, in usecase.PipelineInput) (*entity.Pipeline, error) {
	return nil, errors.New("not used")
}

func (stubPipelines) Update(ctx context.Context, id, userID string, in usecase.PipelineInput) (*entity.Pipeline, error) {
	return nil, errors.New("not used")
}

func (stubPipelines) Delete(ctx context.Context, id, userID string) error {
	return errors.New("not used")
}

func claims(userID, role string) *jwtmw.Claims {
	return &jwtmw.Claims{Role: role, RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}
}

func newTestRouter() *gin.Engine {
	return NewRouter(Handlers{
		Auth:     authhandler.NewAuthHandler(nil),
		Jobs:     jobhandler.NewJobHandler(nil),
		Pipeline: pipelinehandler.NewPipelineHandler(stubPipelines{}),
	}, Options{
		Verifier: stubVerifier{
			"user-token":  claims("u-1", jwtmw.RoleUser),
			"guest-token": claims("u-2", "Guest"),
		},
	})
}

func TestNewRouter_Authorization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"health is public", http.MethodGet, "/healthz", "", http.StatusOK},
		{"job list without token", http.MethodGet, "/api/job", "", http.StatusUnauthorized},
		{"job list with invalid token", http.MethodGet, "/api/job", "forged", http.StatusUnauthorized},
		{"job list without User role", http.MethodGet, "/api/job", "guest-token", http.StatusForbidden},
		{"job create without User role", http.MethodPost, "/api/job", "guest-token", http.StatusForbidden},
		{"pipeline create without User role", http.MethodPost, "/api/pipeline", "guest-token", http.StatusForbidden},
		{"pipeline delete without User role", http.MethodDelete, "/api/pipeline/p1", "guest-token", http.StatusForbidden},
		{"pipeline list needs only authentication", http.MethodGet, "/api/pipeline", "guest-token", http.StatusOK},
		{"pipeline get needs only authentication", http.MethodGet, "/api/pipeline/p1", "guest-token", http.StatusNotFound},
		{"pipeline list with User role", http.MethodGet, "/api/pipeline", "user-token", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/unknown", "user-token", http.StatusNotFound},
	}

	r := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestPolicy_CoversEveryMutatingRoute(t *testing.T) {
	t.Parallel()

	p := Policy()
	for _, rt := range newTestRouter().Routes() {
		if rt.Method == http.MethodGet || rt.Method == http.MethodHead || rt.Method == http.MethodOptions {
			continue
		}
		if rt.Path == "/api/auth/register" || rt.Path == "/api/auth/login" {
			continue
		}
		assert.Equal(t, jwtmw.RoleUser, p.RequiredRole(rt.Method, rt.Path), "%s %s", rt.Method, rt.Path)
	}
	assert.Empty(t, p.RequiredRole(http.MethodGet, "/api/pipeline"))
	assert.Equal(t, jwtmw.RoleUser, p.RequiredRole(http.MethodGet, "/api/job/stage/:stage"))
}

func TestNewRouter_CORS(t *testing.T) {
	t.Parallel()

	r := NewRouter(Handlers{
		Auth:     authhandler.NewAuthHandler(nil),
		Jobs:     jobhandler.NewJobHandler(nil),
		Pipeline: pipelinehandler.NewPipelineHandler(stubPipelines{}),
	}, Options{Verifier: stubVerifier{}, CORSOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
