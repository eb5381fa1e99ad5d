// Package web provides the REST API surface of the workflow builder.
package web

import "github.com/canvasflow/canvasflow/pkg/models"

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// CreateWorkspaceRequest is the body for creating a workspace.
type CreateWorkspaceRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

// CreateSystemRequest is the body for creating a system (and its workflow).
type CreateSystemRequest struct {
	Name        string `json:"name"         validate:"required,min=1"`
	Description string `json:"description"`
	WorkspaceID string `json:"workspace_id" validate:"required"`
}

// SaveWorkflowRequest is the body for the explicit save: the full graph
// state as edited client-side. The server recomputes derived connections.
type SaveWorkflowRequest struct {
	Name      string                   `json:"name" validate:"required,min=1"`
	Nodes     []*models.WorkflowNode   `json:"nodes"`
	Variables []*models.CustomVariable `json:"variables"`
}

// CreateNodeRequest is the body for adding a node to a workflow.
type CreateNodeRequest struct {
	Type     models.NodeType `json:"type" validate:"required"`
	Name     string          `json:"name"`
	Position models.Position `json:"position"`
}

// UpdateNodeRequest is the body for a partial node update.
type UpdateNodeRequest struct {
	Name        *string                 `json:"name,omitempty" validate:"omitempty,min=1"`
	Position    *models.Position        `json:"position,omitempty"`
	Config      map[string]any          `json:"config,omitempty"`
	Connections *models.NodeConnections `json:"connections,omitempty"`
}

// SetNodeFieldRequest is the body for one coerced field edit.
type SetNodeFieldRequest struct {
	Value any `json:"value"`
}

// ValidateNodeDataRequest carries sample data to check against a node's
// output schema.
type ValidateNodeDataRequest struct {
	Data any `json:"data" validate:"required"`
}

// ConnectRequest is the body for adding or removing an edge.
type ConnectRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to"   validate:"required"`
}
