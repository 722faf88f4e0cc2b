package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed import row. It aborts the rest of
// the batch; rows inserted before it stay inserted.
type ValidationError struct {
	Row   int
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: missing required field %q", e.Row, e.Field)
}

// NewValidationError creates a ValidationError for the given row and field.
func NewValidationError(row int, field string) *ValidationError {
	return &ValidationError{Row: row, Field: field}
}

// Retrieval pipeline stages reported by RetrievalError.
const (
	RetrievalStageEmbed    = "embed"
	RetrievalStageSearch   = "search"
	RetrievalStageComplete = "complete"
)

// RetrievalError wraps any embedding, index or completion failure during
// a query. Queries failing this way are never retried or partially answered.
type RetrievalError struct {
	Stage string
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed at %s stage: %v", e.Stage, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// NewRetrievalError wraps err as a RetrievalError for the given stage.
func NewRetrievalError(stage string, err error) *RetrievalError {
	return &RetrievalError{Stage: stage, Err: err}
}
