package file

import (
	"context"
	"sort"
	"time"

	"github.com/canvasflow/canvasflow/pkg/models"
)

// WorkspaceRepository handles workspace file operations.
type WorkspaceRepository struct {
	store store
}

func (r *WorkspaceRepository) List(ctx context.Context) ([]*models.Workspace, error) {
	ids, err := r.store.ids()
	if err != nil {
		return nil, err
	}

	workspaces := make([]*models.Workspace, 0, len(ids))

	for _, id := range ids {
		workspace, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if workspace != nil {
			workspaces = append(workspaces, workspace)
		}
	}

	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].CreatedAt.After(workspaces[j].CreatedAt)
	})

	return workspaces, nil
}

func (r *WorkspaceRepository) GetByID(_ context.Context, id string) (*models.Workspace, error) {
	var workspace models.Workspace

	found, err := r.store.read(id, &workspace)
	if err != nil || !found {
		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) Save(_ context.Context, workspace *models.Workspace) error {
	now := time.Now().UTC()
	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = now
	}

	workspace.UpdatedAt = now

	return r.store.write(workspace.ID, workspace)
}

func (r *WorkspaceRepository) Delete(_ context.Context, id string) error {
	return r.store.remove(id)
}
