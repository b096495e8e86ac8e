package authz

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	jwtmw "jobtracker_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func claimsWithRole(role string) *jwtmw.Claims {
	return &jwtmw.Claims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		claims   *jwtmw.Claims
		required string
		want     Decision
	}{
		{"unauthenticated with no required role", nil, "", Deny},
		{"unauthenticated with required role", nil, "User", Deny},
		{"claims without subject", &jwtmw.Claims{Role: "User"}, "User", Deny},
		{"no required role allows any authenticated caller", claimsWithRole(""), "", Allow},
		{"exact match", claimsWithRole("User"), "User", Allow},
		{"case sensitive", claimsWithRole("user"), "User", Deny},
		{"no hierarchy", claimsWithRole("Admin"), "User", Deny},
		{"missing role claim", claimsWithRole(""), "User", Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Authorize(tt.claims, tt.required))
		})
	}
}

func TestPolicy_RequiredRole(t *testing.T) {
	t.Parallel()

	p := Policy{{Method: http.MethodPost, Path: "/api/job"}: "User"}

	assert.Equal(t, "User", p.RequiredRole(http.MethodPost, "/api/job"))
	assert.Empty(t, p.RequiredRole(http.MethodGet, "/api/job"))
}

func TestEnforce(t *testing.T) {
	t.Parallel()

	policy := Policy{{Method: http.MethodPost, Path: "/items"}: "Admin"}

	tests := []struct {
		name       string
		claims     *jwtmw.Claims
		method     string
		wantStatus int
	}{
		{"anonymous", nil, http.MethodGet, http.StatusUnauthorized},
		{"open route", claimsWithRole("User"), http.MethodGet, http.StatusOK},
		{"role route denied", claimsWithRole("User"), http.MethodPost, http.StatusForbidden},
		{"role route allowed", claimsWithRole("Admin"), http.MethodPost, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.claims != nil {
					c.Set(jwtmw.ContextClaims, tt.claims)
				}
				c.Next()
			})
			r.Use(Enforce(policy))
			r.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })
			r.POST("/items", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, "/items", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.JSONEq(t, `{"message":"forbidden","statusCode":403}`, w.Body.String())
			}
		})
	}
}
