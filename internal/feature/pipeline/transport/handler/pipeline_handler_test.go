package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker_backend/internal/feature/pipeline/domain/entity"
	"jobtracker_backend/internal/feature/pipeline/usecase"
	jwtmw "jobtracker_backend/internal/platform/jwt"
)

// mockPipelineUsecase is a mock implementation of PipelineUsecase.
type mockPipelineUsecase struct {
	ListFunc   func(ctx context.Context, userID string) ([]entity.Pipeline, error)
	GetFunc    func(ctx context.Context, id, userID string) (*entity.Pipeline, error)
	CreateFunc func(ctx context.Context, userID string, in usecase.PipelineInput) (*entity.Pipeline, error)
	UpdateFunc func(ctx context.Context, id, userID string, in usecase.PipelineInput) (*entity.Pipeline, error)
	DeleteFunc func(ctx context.Context, id, userID string) error
}

func (m *mockPipelineUsecase) List(ctx context.Context, userID string) ([]entity.Pipeline, error) {
	return m.ListFunc(ctx, userID)
}

func (m *mockPipelineUsecase) Get(ctx context.Context, id, userID string) (*entity.Pipeline, error) {
	return m.GetFunc(ctx, id, userID)
}

func (m *mockPipelineUsecase) Create(ctx context.Context, userID string, in usecase.PipelineInput) (*entity.Pipeline, error) {
	return m.CreateFunc(ctx, userID, in)
}

func (m *mockPipelineUsecase) Update(ctx context.Context, id, userID string, in usecase.PipelineInput) (*entity.Pipeline, error) {
	return m.UpdateFunc(ctx, id, userID, in)
}

func (m *mockPipelineUsecase) Delete(ctx context.Context, id, userID string) error {
	return m.DeleteFunc(ctx, id, userID)
}

func newRouter(uc PipelineUsecase, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(jwtmw.ContextUserID, userID)
		}
		c.Next()
	})
	h := NewPipelineHandler(uc)
	r.GET("/api/pipeline", h.List)
	r.GET("/api/pipeline/:id", h.Get)
	r.POST("/api/pipeline", h.Create)
	r.PUT("/api/pipeline/:id", h.Update)
	r.DELETE("/api/pipeline/:id", h.Delete)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPipelineHandler_List(t *testing.T) {
	t.Run("default pipeline has no owner or timestamps", func(t *testing.T) {
		uc := &mockPipelineUsecase{ListFunc: func(ctx context.Context, userID string) ([]entity.Pipeline, error) {
			assert.Equal(t, "alice", userID)
			return []entity.Pipeline{entity.NewDefaultPipeline()}, nil
		}}

		w := do(t, newRouter(uc, "alice"), http.MethodGet, "/api/pipeline", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":"000000000000000000000001","name":"Default Pipeline",
			"stages":["Wishlist","Applied","Screening","Interview","Offer","Rejected"]}]`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		uc := &mockPipelineUsecase{ListFunc: func(ctx context.Context, userID string) ([]entity.Pipeline, error) {
			return nil, errors.New("db down")
		}}

		w := do(t, newRouter(uc, "alice"), http.MethodGet, "/api/pipeline", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"internal server error","statusCode":500}`, w.Body.String())
	})

	t.Run("anonymous", func(t *testing.T) {
		w := do(t, newRouter(&mockPipelineUsecase{}, ""), http.MethodGet, "/api/pipeline", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPipelineHandler_Get(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := &mockPipelineUsecase{GetFunc: func(ctx context.Context, id, userID string) (*entity.Pipeline, error) {
		if id == "p1" && userID == "alice" {
			return &entity.Pipeline{ID: "p1", UserID: "alice", Name: "Tech", Stages: []string{"A"}, CreatedAt: created, UpdatedAt: created}, nil
		}
		return nil, usecase.ErrNotFound
	}}

	t.Run("owned", func(t *testing.T) {
		w := do(t, newRouter(uc, "alice"), http.MethodGet, "/api/pipeline/p1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"p1","userId":"alice","name":"Tech","stages":["A"],
			"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}`, w.Body.String())
	})

	t.Run("other user sees not found", func(t *testing.T) {
		w := do(t, newRouter(uc, "bob"), http.MethodGet, "/api/pipeline/p1", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"pipeline not found or unauthorized","statusCode":404}`, w.Body.String())
	})
}

func TestPipelineHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		createErr      error
		expectedStatus int
	}{
		{"success", gin.H{"name": "Tech", "stages": []string{"Applied", "Offer"}}, nil, http.StatusOK},
		{"missing name", gin.H{"stages": []string{"Applied"}}, nil, http.StatusBadRequest},
		{"empty stages", gin.H{"name": "Tech", "stages": []string{}}, nil, http.StatusBadRequest},
		{"usecase validation", gin.H{"name": "Tech", "stages": []string{"A", "A"}}, usecase.ErrDefaultPipelineReadOnly, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockPipelineUsecase{CreateFunc: func(ctx context.Context, userID string, in usecase.PipelineInput) (*entity.Pipeline, error) {
				if tt.createErr != nil {
					return nil, tt.createErr
				}
				return &entity.Pipeline{ID: "new", UserID: userID, Name: in.Name, Stages: in.Stages}, nil
			}}

			w := do(t, newRouter(uc, "alice"), http.MethodPost, "/api/pipeline", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var res map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
				assert.Equal(t, "new", res["id"])
				assert.Equal(t, "alice", res["userId"])
			}
		})
	}
}

func TestPipelineHandler_Update(t *testing.T) {
	uc := &mockPipelineUsecase{UpdateFunc: func(ctx context.Context, id, userID string, in usecase.PipelineInput) (*entity.Pipeline, error) {
		if id == entity.DefaultPipelineID {
			return nil, usecase.ErrDefaultPipelineReadOnly
		}
		return &entity.Pipeline{ID: id, UserID: userID, Name: in.Name, Stages: in.Stages}, nil
	}}
	body := gin.H{"name": "Renamed", "stages": []string{"C"}}

	w := do(t, newRouter(uc, "alice"), http.MethodPut, "/api/pipeline/p1", body)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, newRouter(uc, "alice"), http.MethodPut, "/api/pipeline/"+entity.DefaultPipelineID, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPipelineHandler_Delete(t *testing.T) {
	uc := &mockPipelineUsecase{DeleteFunc: func(ctx context.Context, id, userID string) error {
		if id == "p1" && userID == "alice" {
			return nil
		}
		return usecase.ErrNotFound
	}}

	w := do(t, newRouter(uc, "alice"), http.MethodDelete, "/api/pipeline/p1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Pipeline deleted"}`, w.Body.String())

	w = do(t, newRouter(uc, "bob"), http.MethodDelete, "/api/pipeline/p1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
