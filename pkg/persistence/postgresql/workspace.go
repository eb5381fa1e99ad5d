package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/canvasflow/canvasflow/pkg/models"
)

// WorkspaceRepository handles workspace database operations.
type WorkspaceRepository struct {
	db *sql.DB
}

func (r *WorkspaceRepository) List(ctx context.Context) ([]*models.Workspace, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM workspaces
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	workspaces := make([]*models.Workspace, 0)

	for rows.Next() {
		var workspace models.Workspace

		err := rows.Scan(&workspace.ID, &workspace.Name, &workspace.Description,
			&workspace.CreatedAt, &workspace.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}

		workspaces = append(workspaces, &workspace)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workspaces: %w", err)
	}

	return workspaces, nil
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`

	var workspace models.Workspace

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&workspace.ID, &workspace.Name, &workspace.Description,
		&workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan workspace: %w", err)
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) Save(ctx context.Context, workspace *models.Workspace) error {
	now := time.Now().UTC()
	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = now
	}

	workspace.UpdatedAt = now

	query := `
		INSERT INTO workspaces (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		workspace.ID, workspace.Name, workspace.Description,
		workspace.CreatedAt, workspace.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save workspace %s: %w", workspace.ID, err)
	}

	return nil
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace %s: %w", id, err)
	}

	return nil
}
