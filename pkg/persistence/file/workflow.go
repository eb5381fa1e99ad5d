package file

import (
	"context"
	"sort"
	"time"

	"github.com/canvasflow/canvasflow/pkg/models"
)

// WorkflowRepository handles workflow file operations.
type WorkflowRepository struct {
	store store
}

func (r *WorkflowRepository) List(ctx context.Context) ([]*models.Workflow, error) {
	ids, err := r.store.ids()
	if err != nil {
		return nil, err
	}

	workflows := make([]*models.Workflow, 0, len(ids))

	for _, id := range ids {
		workflow, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if workflow != nil {
			workflows = append(workflows, workflow)
		}
	}

	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].CreatedAt.After(workflows[j].CreatedAt)
	})

	return workflows, nil
}

func (r *WorkflowRepository) GetByID(_ context.Context, id string) (*models.Workflow, error) {
	var workflow models.Workflow

	found, err := r.store.read(id, &workflow)
	if err != nil || !found {
		return nil, err
	}

	return &workflow, nil
}

// GetBySystem returns the workflow owned by the given system, or nil.
func (r *WorkflowRepository) GetBySystem(ctx context.Context, systemID string) (*models.Workflow, error) {
	workflows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, workflow := range workflows {
		if workflow.SystemID == systemID {
			return workflow, nil
		}
	}

	return nil, nil
}

func (r *WorkflowRepository) Save(_ context.Context, workflow *models.Workflow) error {
	now := time.Now().UTC()
	if workflow.CreatedAt.IsZero() {
		workflow.CreatedAt = now
	}

	workflow.UpdatedAt = now

	return r.store.write(workflow.ID, workflow)
}

func (r *WorkflowRepository) Delete(_ context.Context, id string) error {
	return r.store.remove(id)
}
