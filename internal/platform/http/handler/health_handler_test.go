package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(store Pinger) *gin.Engine {
	r := gin.New()
	h := Health(store)
	r.GET("/healthz", h)
	r.HEAD("/healthz", h)
	r.OPTIONS("/healthz", h)
	return r
}

func TestHealth(t *testing.T) {
	t.Parallel()

	healthy := pingerFunc(func(ctx context.Context) error { return nil })
	down := pingerFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name           string
		store          Pinger
		method         string
		expectedStatus int
		expectedBody   map[string]string
	}{
		{"GET healthy store", healthy, http.MethodGet, http.StatusOK, map[string]string{"status": "ok", "store": "ok"}},
		{"GET without store", nil, http.MethodGet, http.StatusOK, map[string]string{"status": "ok", "store": "skipped"}},
		{"GET store down", down, http.MethodGet, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "store": "unreachable"}},
		{"HEAD healthy store", healthy, http.MethodHead, http.StatusOK, nil},
		{"HEAD store down", down, http.MethodHead, http.StatusServiceUnavailable, nil},
		{"OPTIONS", down, http.MethodOptions, http.StatusNoContent, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := setupRouter(tt.store)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/healthz", nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			if tt.expectedBody == nil {
				assert.Zero(t, w.Body.Len())
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}
