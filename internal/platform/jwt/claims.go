// Package jwtmw issues and verifies signed session tokens and exposes the gin middleware
// that authenticates requests with them.
package jwtmw

import "github.com/golang-jwt/jwt/v5"

// RoleUser is the role claim every registered user receives.
const RoleUser = "User"

// Claims is the claim set embedded in a session token.
type Claims struct {
	Username string `json:"unique_name,omitempty"`
	Email    string `json:"email,omitempty"`
	// Role may be absent, meaning "no role".
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}
