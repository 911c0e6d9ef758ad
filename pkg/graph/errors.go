package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the graph store.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateNode = errors.New("duplicate node")
	ErrNodeNotFound  = errors.New("node not found")
	ErrEdgeNotFound  = errors.New("edge not found")
)

// StoreError provides structured error information for store operations.
type StoreError struct {
	Op     string // Operation that failed (e.g. "AddNode", "RemoveEdge")
	Entity string // Entity kind ("node" or "edge")
	ID     string // Entity ID (if applicable)
	Cause  error  // Underlying sentinel
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *StoreError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func storeErr(op, entity, id string, cause error) *StoreError {
	return &StoreError{Op: op, Entity: entity, ID: id, Cause: cause}
}
