// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "github.com/oapi-codegen/runtime/types"

// RegisterReq represents the request body for the /register endpoint.
// Email format is checked while decoding; the remaining fields use Gin's binding tags.
type RegisterReq struct {
	Username string      `json:"username" binding:"required"`
	Email    types.Email `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
}

// RegisterRes is returned after a successful registration.
type RegisterRes struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}
