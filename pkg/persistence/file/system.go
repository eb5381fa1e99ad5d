package file

import (
	"context"
	"sort"
	"time"

	"github.com/canvasflow/canvasflow/pkg/models"
)

// SystemRepository handles system file operations.
type SystemRepository struct {
	store store
}

func (r *SystemRepository) List(ctx context.Context) ([]*models.System, error) {
	ids, err := r.store.ids()
	if err != nil {
		return nil, err
	}

	systems := make([]*models.System, 0, len(ids))

	for _, id := range ids {
		system, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if system != nil {
			systems = append(systems, system)
		}
	}

	sort.Slice(systems, func(i, j int) bool {
		return systems[i].CreatedAt.After(systems[j].CreatedAt)
	})

	return systems, nil
}

func (r *SystemRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*models.System, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	systems := make([]*models.System, 0, len(all))

	for _, system := range all {
		if system.WorkspaceID == workspaceID {
			systems = append(systems, system)
		}
	}

	return systems, nil
}

func (r *SystemRepository) GetByID(_ context.Context, id string) (*models.System, error) {
	var system models.System

	found, err := r.store.read(id, &system)
	if err != nil || !found {
		return nil, err
	}

	return &system, nil
}

func (r *SystemRepository) Save(_ context.Context, system *models.System) error {
	now := time.Now().UTC()
	if system.CreatedAt.IsZero() {
		system.CreatedAt = now
	}

	system.UpdatedAt = now

	return r.store.write(system.ID, system)
}

func (r *SystemRepository) Delete(_ context.Context, id string) error {
	return r.store.remove(id)
}
