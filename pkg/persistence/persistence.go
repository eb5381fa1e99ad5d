// Package persistence provides the storage abstraction for workspaces,
// systems, and workflows.
package persistence

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
)

type Persistence interface {
	WorkflowRepository() WorkflowRepository
	SystemRepository() SystemRepository
	WorkspaceRepository() WorkspaceRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// WorkflowRepository stores workflow documents. GetByID returns (nil, nil)
// when the id is unknown; callers decide whether that is an error.
type WorkflowRepository interface {
	List(ctx context.Context) ([]*models.Workflow, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	GetBySystem(ctx context.Context, systemID string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error
}

type SystemRepository interface {
	List(ctx context.Context) ([]*models.System, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*models.System, error)
	GetByID(ctx context.Context, id string) (*models.System, error)
	Save(ctx context.Context, system *models.System) error
	Delete(ctx context.Context, id string) error
}

type WorkspaceRepository interface {
	List(ctx context.Context) ([]*models.Workspace, error)
	GetByID(ctx context.Context, id string) (*models.Workspace, error)
	Save(ctx context.Context, workspace *models.Workspace) error
	Delete(ctx context.Context, id string) error
}
