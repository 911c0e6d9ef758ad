package algorithms

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors forming the engine's failure taxonomy. Every public
// function documents the subset it can return; callers match with
// errors.Is. Expected failures are always returned, never panicked.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidWeight       = errors.New("invalid edge weight")
	ErrNegativeWeight      = errors.New("negative edge weight")
	ErrCycleDetected       = errors.New("cycle detected")
	ErrEmptyGraph          = errors.New("graph is empty")
	ErrInsufficientNodes   = errors.New("insufficient nodes")
	ErrInvalidK            = errors.New("invalid partition count")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrConvergenceFailure  = errors.New("convergence failure")
)

// AlgoError provides structured context around a sentinel failure.
type AlgoError struct {
	Op       string   // Operation that failed (e.g. "Dijkstra", "TopologicalSort")
	NodeID   string   // Offending node (if applicable)
	EdgeID   string   // Offending edge (if applicable)
	Cycle    []string // Cycle path for ErrCycleDetected
	Required int      // Required count for ErrInsufficientNodes / ErrInvalidK
	Actual   int      // Actual count for ErrInsufficientNodes / ErrInvalidK
	Cause    error    // Underlying sentinel
}

// Error implements the error interface.
func (e *AlgoError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Op, e.Cause)
	if e.NodeID != "" {
		fmt.Fprintf(&b, " (node %q)", e.NodeID)
	}
	if e.EdgeID != "" {
		fmt.Fprintf(&b, " (edge %q)", e.EdgeID)
	}
	if len(e.Cycle) > 0 {
		fmt.Fprintf(&b, " (cycle %s)", strings.Join(e.Cycle, " -> "))
	}
	if e.Required != 0 || e.Actual != 0 {
		fmt.Fprintf(&b, " (required %d, actual %d)", e.Required, e.Actual)
	}
	return b.String()
}

// Unwrap returns the underlying sentinel for error chain support.
func (e *AlgoError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's cause.
func (e *AlgoError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func opErr(op string, cause error) *AlgoError {
	return &AlgoError{Op: op, Cause: cause}
}

func nodeErr(op, nodeID string, cause error) *AlgoError {
	return &AlgoError{Op: op, NodeID: nodeID, Cause: cause}
}

func edgeErr(op, edgeID string, cause error) *AlgoError {
	return &AlgoError{Op: op, EdgeID: edgeID, Cause: cause}
}

func cycleErr(op string, cycle []string) *AlgoError {
	return &AlgoError{Op: op, Cycle: cycle, Cause: ErrCycleDetected}
}

func countErr(op string, cause error, required, actual int) *AlgoError {
	return &AlgoError{Op: op, Required: required, Actual: actual, Cause: cause}
}
