package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker_backend/internal/shared/apperr"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperr.New(apperr.ErrValidation, "name is required"), http.StatusBadRequest, "name is required"},
		{"invalid reference", apperr.New(apperr.ErrInvalidReference, "pipeline does not exist or is not owned by caller"), http.StatusBadRequest, "pipeline does not exist or is not owned by caller"},
		{"invalid stage", fmt.Errorf("update job: %w", apperr.New(apperr.ErrInvalidStage, "bad stage")), http.StatusBadRequest, "bad stage"},
		{"conflict", apperr.New(apperr.ErrConflict, "email already exists"), http.StatusBadRequest, "email already exists"},
		{"unauthenticated", apperr.New(apperr.ErrUnauthenticated, "invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", apperr.New(apperr.ErrForbidden, "forbidden"), http.StatusForbidden, "forbidden"},
		{"not found", apperr.New(apperr.ErrNotFound, "job not found"), http.StatusNotFound, "job not found"},
		{"bare sentinel", apperr.ErrNotFound, http.StatusNotFound, "not found"},
		{"store failure hides details", errors.New("dial tcp 10.0.0.1:27017: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, msg := Status(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestWrite_Body(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Write(c, apperr.New(apperr.ErrNotFound, "job not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Message: "job not found", StatusCode: http.StatusNotFound}, body)
}

func TestAbort_StopsChain(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Abort(c, apperr.New(apperr.ErrUnauthenticated, "unauthorized"))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(gin.CustomRecovery(Recovery))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
	assert.Equal(t, http.StatusInternalServerError, body.StatusCode)
}
