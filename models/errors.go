package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrForbidden is returned when the caller is not the owner of the record.
// It is always distinguished from ErrNotFound at the boundary.
var ErrForbidden = errors.New("not the owner of this record")

// ErrLocationCycle signals a cycle in the stored parent graph. The parent
// chain must be acyclic; hitting this means the data is corrupt, not that
// the request was bad.
var ErrLocationCycle = errors.New("location parent graph contains a cycle")

// ValidationError reports malformed input rejected before any store mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// HasItemsError rejects a location delete because items still reference it.
type HasItemsError struct {
	LocationID uint
	Count      int64
}

func (e *HasItemsError) Error() string {
	return fmt.Sprintf("location %d still holds %d item(s); move or delete them first", e.LocationID, e.Count)
}

// HasChildrenError rejects a location delete because child locations exist.
type HasChildrenError struct {
	LocationID uint
	Count      int64
}

func (e *HasChildrenError) Error() string {
	return fmt.Sprintf("location %d has %d sub-location(s); delete them first", e.LocationID, e.Count)
}
