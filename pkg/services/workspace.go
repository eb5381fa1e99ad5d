package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/persistence"
)

// ErrWorkspaceNotFound is returned when a workspace is not found.
var ErrWorkspaceNotFound = persistence.ErrWorkspaceNotFound

// Workspace handles workspace business operations.
type Workspace struct {
	persistence persistence.Persistence
	systems     *System
}

// NewWorkspace creates a new workspace service.
func NewWorkspace(persistence persistence.Persistence, systems *System) *Workspace {
	return &Workspace{
		persistence: persistence,
		systems:     systems,
	}
}

func (s *Workspace) List(ctx context.Context) ([]*models.Workspace, error) {
	return s.persistence.WorkspaceRepository().List(ctx)
}

func (s *Workspace) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	workspace, err := s.persistence.WorkspaceRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	return workspace, nil
}

func (s *Workspace) Create(ctx context.Context, name, description string) (*models.Workspace, error) {
	workspace := &models.Workspace{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	}

	if err := s.persistence.WorkspaceRepository().Save(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}

	return workspace, nil
}

// Delete removes a workspace and every system (and owned workflow) in it.
func (s *Workspace) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	systems, err := s.systems.ListByWorkspace(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list workspace systems: %w", err)
	}

	for _, system := range systems {
		if err := s.systems.Delete(ctx, system.ID); err != nil {
			return err
		}
	}

	return s.persistence.WorkspaceRepository().Delete(ctx, id)
}
