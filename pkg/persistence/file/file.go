// Package file provides file-based persistence: the local-only store used
// when no backend round-trip is desired. Entities live as one JSON document
// per id under the root directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/canvasflow/canvasflow/pkg/persistence"
)

// Persistence implements persistence.Persistence on the file system.
type Persistence struct {
	root          string
	workflowRepo  *WorkflowRepository
	systemRepo    *SystemRepository
	workspaceRepo *WorkspaceRepository
}

// NewPersistence creates a file persistence rooted at the given directory.
// Accepts both plain paths and file:// URLs.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:          cleanRoot,
		workflowRepo:  &WorkflowRepository{store: store{root: cleanRoot, dir: "workflows"}},
		systemRepo:    &SystemRepository{store: store{root: cleanRoot, dir: "systems"}},
		workspaceRepo: &WorkspaceRepository{store: store{root: cleanRoot, dir: "workspaces"}},
	}
}

func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflowRepo
}

func (p *Persistence) SystemRepository() persistence.SystemRepository {
	return p.systemRepo
}

func (p *Persistence) WorkspaceRepository() persistence.WorkspaceRepository {
	return p.workspaceRepo
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close is a no-op for file persistence.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}

// store holds the shared per-entity file operations.
type store struct {
	root string
	dir  string
}

func (s store) path(id string) string {
	return filepath.Clean(path.Join(s.root, s.dir, id+".json"))
}

func (s store) ids() ([]string, error) {
	entityFS := os.DirFS(path.Join(s.root, s.dir))

	jsonFiles, err := fs.Glob(entityFS, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", s.dir, err)
	}

	ids := make([]string, 0, len(jsonFiles))
	for _, file := range jsonFiles {
		ids = append(ids, strings.TrimSuffix(file, ".json"))
	}

	return ids, nil
}

// read unmarshals one entity; missing files yield (false, nil).
func (s store) read(id string, out any) (bool, error) {
	body, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to read %s %s: %w", s.dir, id, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s %s: %w", s.dir, id, err)
	}

	return true, nil
}

func (s store) write(id string, entity any) error {
	if err := os.MkdirAll(path.Join(s.root, s.dir), 0750); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", s.dir, id, err)
	}

	return os.WriteFile(s.path(id), data, 0600)
}

func (s store) remove(id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s %s: %w", s.dir, id, err)
	}

	return nil
}
