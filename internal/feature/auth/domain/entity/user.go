// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// Users are created at registration and are immutable afterwards.
type User struct {
	// ID is the opaque unique identifier for the user.
	ID string `gorm:"primaryKey;size:64"`

	// Username is the display name. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// Email is the user's email address. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the password.
	// It is never logged or returned to clients.
	PasswordHash string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
