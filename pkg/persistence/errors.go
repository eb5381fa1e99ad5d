package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrWorkflowNotFound indicates a workflow was not found by the given identifier.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrSystemNotFound indicates a system was not found by the given identifier.
	ErrSystemNotFound = errors.New("system not found")

	// ErrWorkspaceNotFound indicates a workspace was not found by the given identifier.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrNodeNotFound indicates a node was not found within a workflow.
	ErrNodeNotFound = errors.New("node not found")
)

// StoreError wraps storage failures with the operation and entity id.
type StoreError struct {
	Op     string // Operation being performed (e.g., "GetByID", "Save", "Delete")
	Entity string // "workflow", "system", "workspace"
	ID     string
	Err    error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
