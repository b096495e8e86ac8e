// Package authz decides whether an authenticated caller may use a route.
//
// Policies are single-role and exact: a route either requires no role (any authenticated
// caller is allowed) or one role name that must appear verbatim in the caller's role claim.
// There is no role hierarchy.
package authz

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"jobtracker_backend/internal/platform/http/httperr"
	jwtmw "jobtracker_backend/internal/platform/jwt"
	"jobtracker_backend/internal/shared/apperr"
)

// Decision is the outcome of Authorize.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Authorize is the single authorization function. Nil claims mean the caller is not
// authenticated and are always denied. An empty requiredRole allows any authenticated caller.
func Authorize(claims *jwtmw.Claims, requiredRole string) Decision {
	if claims == nil || claims.UserID() == "" {
		return Deny
	}
	if requiredRole == "" {
		return Allow
	}
	if claims.Role == requiredRole {
		return Allow
	}
	return Deny
}

// Route identifies a gin route by method and registered path pattern.
type Route struct {
	Method string
	Path   string
}

// Policy maps routes to the single role they require. Routes absent from the map require
// no role.
type Policy map[Route]string

// RequiredRole returns the role declared for the route.
func (p Policy) RequiredRole(method, path string) string {
	return p[Route{Method: method, Path: path}]
}

// Enforce returns a middleware evaluating the policy for the matched route. It must run
// after jwtmw.AuthRequired.
func Enforce(p Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := jwtmw.ClaimsFrom(c)
		if !ok {
			httperr.Abort(c, apperr.New(apperr.ErrUnauthenticated, "unauthorized"))
			return
		}

		required := p.RequiredRole(c.Request.Method, c.FullPath())
		if Authorize(claims, required) == Deny {
			slog.Warn("authorization denied", "user_id", claims.UserID(), "required_role", required, "path", c.FullPath())
			httperr.Abort(c, apperr.New(apperr.ErrForbidden, "forbidden"))
			return
		}
		c.Next()
	}
}
