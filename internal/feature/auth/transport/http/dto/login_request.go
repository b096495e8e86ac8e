package dto

import "strings"

// LoginReq represents the request body for the /login endpoint.
// Callers identify themselves with one of email, emailOrUsername or username.
type LoginReq struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password" binding:"required"`
}

// Identifier picks the login identifier: email wins, then emailOrUsername, then username.
func (r LoginReq) Identifier() string {
	for _, v := range []string{r.Email, r.EmailOrUsername, r.Username} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// LoginRes is returned on successful login.
type LoginRes struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
