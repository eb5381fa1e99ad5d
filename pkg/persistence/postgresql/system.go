package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/canvasflow/canvasflow/pkg/models"
)

// SystemRepository handles system database operations.
type SystemRepository struct {
	db *sql.DB
}

const systemColumns = `
	id
  , name
  , description
  , workspace_id
  , workflow_id
  , created_at
  , updated_at
`

func (r *SystemRepository) List(ctx context.Context) ([]*models.System, error) {
	return r.list(ctx, `SELECT `+systemColumns+` FROM systems ORDER BY created_at DESC`)
}

func (r *SystemRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*models.System, error) {
	return r.list(ctx, `SELECT `+systemColumns+` FROM systems WHERE workspace_id = $1 ORDER BY created_at DESC`, workspaceID)
}

func (r *SystemRepository) list(ctx context.Context, query string, args ...any) ([]*models.System, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query systems: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	systems := make([]*models.System, 0)

	for rows.Next() {
		system, err := scanSystem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan system: %w", err)
		}

		systems = append(systems, system)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating systems: %w", err)
	}

	return systems, nil
}

func (r *SystemRepository) GetByID(ctx context.Context, id string) (*models.System, error) {
	query := `SELECT ` + systemColumns + ` FROM systems WHERE id = $1`

	system, err := scanSystem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan system: %w", err)
	}

	return system, nil
}

func (r *SystemRepository) Save(ctx context.Context, system *models.System) error {
	now := time.Now().UTC()
	if system.CreatedAt.IsZero() {
		system.CreatedAt = now
	}

	system.UpdatedAt = now

	query := `
		INSERT INTO systems (id, name, description, workspace_id, workflow_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			workspace_id = EXCLUDED.workspace_id,
			workflow_id = EXCLUDED.workflow_id,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		system.ID, system.Name, system.Description, system.WorkspaceID, system.WorkflowID,
		system.CreatedAt, system.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save system %s: %w", system.ID, err)
	}

	return nil
}

func (r *SystemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM systems WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete system %s: %w", id, err)
	}

	return nil
}

func scanSystem(row rowScanner) (*models.System, error) {
	var (
		system     models.System
		workflowID sql.NullString
	)

	err := row.Scan(
		&system.ID, &system.Name, &system.Description, &system.WorkspaceID,
		&workflowID, &system.CreatedAt, &system.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	system.WorkflowID = workflowID.String

	return &system, nil
}
