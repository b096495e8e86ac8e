// Package entity defines the domain entities for the job feature.
package entity

import "time"

// JobApplication is one tracked application owned by a single user.
//
// After every successful write Stage is one of the referenced pipeline's stages and
// PipelineName equals that pipeline's name.
type JobApplication struct {
	ID           string
	UserID       string
	PipelineID   string
	PipelineName string
	Stage        string

	Name     string
	Company  string
	Role     string
	Location string
	Source   string
	Notes    string

	AppliedDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
