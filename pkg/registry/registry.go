// Package registry provides the static node-type catalog for the builder.
package registry

import (
	"log/slog"

	"github.com/canvasflow/canvasflow/pkg/models"
)

// Fallbacks applied when a node type is not in the catalog. Unknown types
// never fail; they render with a generic icon under the transform category.
const (
	genericIcon     = "ri-box-3-line"
	genericCategory = models.CategoryTransform
)

type Registry struct {
	logger      *slog.Logger
	definitions map[models.NodeType]models.NodeDefinition
	order       []models.NodeType
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:      logger,
		definitions: make(map[models.NodeType]models.NodeDefinition),
	}
}

// Register adds a definition to the catalog, replacing any previous entry of
// the same type.
func (r *Registry) Register(def models.NodeDefinition) {
	if _, exists := r.definitions[def.Type]; !exists {
		r.order = append(r.order, def.Type)
	}

	r.definitions[def.Type] = def
}

// ListDefinitions returns catalog entries in registration order, optionally
// filtered by category. An empty category lists everything.
func (r *Registry) ListDefinitions(category models.CategoryType) []models.NodeDefinition {
	defs := make([]models.NodeDefinition, 0, len(r.order))

	for _, t := range r.order {
		def := r.definitions[t]
		if category == "" || def.Category == category {
			defs = append(defs, def)
		}
	}

	return defs
}

// DefinitionFor resolves a node type to its catalog entry. Unknown types get
// a generic definition rather than an error.
func (r *Registry) DefinitionFor(nodeType models.NodeType) models.NodeDefinition {
	if def, ok := r.definitions[nodeType]; ok {
		return def
	}

	r.logger.Debug("unknown node type, using generic definition", "type", nodeType)

	return models.NodeDefinition{
		Type:     nodeType,
		Label:    string(nodeType),
		Category: genericCategory,
		Icon:     genericIcon,
	}
}

// DefaultConfigFor returns a fresh copy of the type's default configuration.
// The copy is deep for the nested maps the defaults contain, so callers may
// mutate it freely.
func (r *Registry) DefaultConfigFor(nodeType models.NodeType) map[string]any {
	def, ok := r.definitions[nodeType]
	if !ok || def.DefaultConfig == nil {
		return map[string]any{"parameters": map[string]any{}}
	}

	return copyConfig(def.DefaultConfig)
}

// SchemaCapable reports whether the node carries editable input/output
// schemas feeding variable generation: every AI-processing node, and the
// Excel transform when configured as the Excel reader.
func (r *Registry) SchemaCapable(node *models.WorkflowNode) bool {
	if r.DefinitionFor(node.Type).Category == models.CategoryAI {
		return true
	}

	return node.Type == models.NodeTypeExcel && node.Subtype() == "excel-reader"
}

func copyConfig(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))

	for k, v := range src {
		if m, ok := v.(map[string]any); ok {
			dst[k] = copyConfig(m)

			continue
		}

		dst[k] = v
	}

	return dst
}
