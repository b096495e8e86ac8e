// Package domain holds errors shared by the pipeline feature and its consumers.
package domain

import "errors"

// ErrPipelineNotFound is returned by pipeline stores when no pipeline matches (id, userId).
var ErrPipelineNotFound = errors.New("pipeline not found")
