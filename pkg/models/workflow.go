// Package models defines the core domain models for the workflow graph builder.
package models

import "time"

// Workflow is a node graph owned by a single system. Nodes and Variables are
// owned exclusively by the workflow; all mutation goes through pkg/graph.
type Workflow struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"        validate:"required,min=1"`
	SystemID    string            `json:"system_id"`
	Nodes       []*WorkflowNode   `json:"nodes"`
	Connections []*Connection     `json:"connections"` // Derived cache of node adjacency, recomputed on save
	Variables   []*CustomVariable `json:"variables,omitempty"`
	Logs        []*LogEntry       `json:"logs,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NodeByID returns the node with the given id, or nil.
func (w *Workflow) NodeByID(id string) *WorkflowNode {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}

// System owns exactly one workflow and belongs to a workspace.
type System struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"         validate:"required,min=1"`
	Description string    `json:"description"`
	WorkspaceID string    `json:"workspace_id" validate:"required"`
	WorkflowID  string    `json:"workflow_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Workspace groups systems.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,min=1"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LogEntry is one entry in a workflow's newest-first run log.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"` // "info", "success", "error"
	Message   string    `json:"message"`
}
