package jwtmw

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobtracker_backend/internal/platform/http/httperr"
	"jobtracker_backend/internal/shared/apperr"
)

// Context keys set by AuthRequired.
const (
	ContextUserID = "userID"
	ContextClaims = "claims"
)

// TokenVerifier is the verification contract AuthRequired depends on.
type TokenVerifier interface {
	Verify(token string, now time.Time) (*Claims, error)
}

// AuthRequired returns a Gin middleware that validates the bearer token and stores the
// extracted claims in the context. Every failure is a uniform 401.
func AuthRequired(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			httperr.Abort(c, apperr.New(apperr.ErrUnauthenticated, "missing bearer token"))
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		claims, err := v.Verify(tokenStr, time.Now())
		if err != nil {
			kind := Malformed.String()
			var verr *VerificationError
			if errors.As(err, &verr) {
				kind = verr.Kind.String()
			}
			slog.Warn("token rejected", "reason", kind, "remote_addr", c.ClientIP(), "path", c.FullPath())
			httperr.Abort(c, apperr.New(apperr.ErrUnauthenticated, "invalid token"))
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID())
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthRequired.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok && claims != nil
}

// UserIDFrom returns the authenticated user id, or "" when the request is anonymous.
func UserIDFrom(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
