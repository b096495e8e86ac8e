// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"

	"jobtracker_backend/internal/shared/apperr"
)

var (
	// ErrUserNotFound is returned by repositories when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when registering an email that is already taken.
	ErrEmailAlreadyExists = apperr.New(apperr.ErrConflict, "email already exists")

	// ErrUsernameAlreadyExists is returned when registering a username that is already taken.
	ErrUsernameAlreadyExists = apperr.New(apperr.ErrConflict, "username already exists")

	// ErrDuplicateUser is returned by repositories when a unique index rejects the insert.
	ErrDuplicateUser = apperr.New(apperr.ErrConflict, "email or username already exists")

	// ErrInvalidCredentials is the single login failure. It never reveals whether the
	// identifier or the password was wrong.
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthenticated, "invalid credentials")
)
