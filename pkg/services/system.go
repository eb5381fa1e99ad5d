package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/persistence"
)

// ErrSystemNotFound is returned when a system is not found.
var ErrSystemNotFound = persistence.ErrSystemNotFound

// System handles system business operations. A system owns exactly one
// workflow, created with it and deleted alongside it.
type System struct {
	persistence persistence.Persistence
	workflows   *Workflow
}

// NewSystem creates a new system service.
func NewSystem(persistence persistence.Persistence, workflows *Workflow) *System {
	return &System{
		persistence: persistence,
		workflows:   workflows,
	}
}

func (s *System) List(ctx context.Context) ([]*models.System, error) {
	return s.persistence.SystemRepository().List(ctx)
}

func (s *System) ListByWorkspace(ctx context.Context, workspaceID string) ([]*models.System, error) {
	return s.persistence.SystemRepository().ListByWorkspace(ctx, workspaceID)
}

func (s *System) GetByID(ctx context.Context, id string) (*models.System, error) {
	system, err := s.persistence.SystemRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if system == nil {
		return nil, ErrSystemNotFound
	}

	return system, nil
}

// Create creates a system together with its empty workflow.
func (s *System) Create(ctx context.Context, name, description, workspaceID string) (*models.System, error) {
	system := &models.System{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		WorkspaceID: workspaceID,
	}

	workflow, err := s.workflows.Create(ctx, name, system.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create system workflow: %w", err)
	}

	system.WorkflowID = workflow.ID

	if err := s.persistence.SystemRepository().Save(ctx, system); err != nil {
		return nil, fmt.Errorf("failed to save system: %w", err)
	}

	return system, nil
}

// Delete removes a system and the workflow it owns.
func (s *System) Delete(ctx context.Context, id string) error {
	system, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if system.WorkflowID != "" {
		if err := s.persistence.WorkflowRepository().Delete(ctx, system.WorkflowID); err != nil {
			return fmt.Errorf("failed to delete system workflow: %w", err)
		}
	}

	return s.persistence.SystemRepository().Delete(ctx, id)
}
