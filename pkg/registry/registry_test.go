package registry_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/registry"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	r := registry.NewRegistry(slog.Default())
	r.RegisterDefaultDefinitions()

	return r
}

func TestListDefinitions_RegistrationOrder(t *testing.T) {
	r := newRegistry(t)

	defs := r.ListDefinitions("")

	require.Len(t, defs, 14)
	assert.Equal(t, models.NodeTypeSchedule, defs[0].Type)
	assert.Equal(t, models.NodeTypeNotification, defs[len(defs)-1].Type)
}

func TestListDefinitions_CategoryFilter(t *testing.T) {
	r := newRegistry(t)

	triggers := r.ListDefinitions(models.CategoryTrigger)

	require.Len(t, triggers, 4)
	for _, def := range triggers {
		assert.Equal(t, models.CategoryTrigger, def.Category)
	}
}

func TestDefinitionFor_UnknownTypeGetsGenericDefinition(t *testing.T) {
	r := newRegistry(t)

	def := r.DefinitionFor(models.NodeType("mystery"))

	assert.Equal(t, models.NodeType("mystery"), def.Type)
	assert.Equal(t, "mystery", def.Label)
	assert.Equal(t, models.CategoryTransform, def.Category)
	assert.Equal(t, "ri-box-3-line", def.Icon)
}

func TestDefaultConfigFor_DeepCopy(t *testing.T) {
	r := newRegistry(t)

	first := r.DefaultConfigFor(models.NodeTypeSchedule)
	mode := first["parameters"].(map[string]any)["mode"].(map[string]any)
	mode["dailyTime"] = "23:00:00"

	second := r.DefaultConfigFor(models.NodeTypeSchedule)
	fresh := second["parameters"].(map[string]any)["mode"].(map[string]any)

	assert.Equal(t, "09:00:00", fresh["dailyTime"])
}

func TestDefaultConfigFor_UnknownType(t *testing.T) {
	r := newRegistry(t)

	config := r.DefaultConfigFor(models.NodeType("mystery"))

	assert.Equal(t, map[string]any{"parameters": map[string]any{}}, config)
}

func TestSchemaCapable(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name     string
		node     *models.WorkflowNode
		expected bool
	}{
		{
			"hyperclova",
			&models.WorkflowNode{Type: models.NodeTypeHyperclova},
			true,
		},
		{
			"classifier",
			&models.WorkflowNode{Type: models.NodeTypeClassifier},
			true,
		},
		{
			"excel reader",
			&models.WorkflowNode{
				Type:   models.NodeTypeExcel,
				Config: map[string]any{"subtype": "excel-reader"},
			},
			true,
		},
		{
			"excel without reader subtype",
			&models.WorkflowNode{Type: models.NodeTypeExcel},
			false,
		},
		{
			"code",
			&models.WorkflowNode{Type: models.NodeTypeCode},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.SchemaCapable(tt.node))
		})
	}
}

func TestWireType(t *testing.T) {
	tests := []struct {
		nodeType models.NodeType
		wireType string
		subtype  string
	}{
		{models.NodeTypeSchedule, "trigger", "schedule"},
		{models.NodeTypeHyperclova, "ai-processing", "hyperclova"},
		{models.NodeTypeIfElse, "control", "if"},
		{models.NodeTypeDatabase, "output", "database-writer"},
		{models.NodeType("mystery"), "mystery", "mystery"},
	}

	for _, tt := range tests {
		t.Run(string(tt.nodeType), func(t *testing.T) {
			wireType, subtype := registry.WireType(tt.nodeType)
			assert.Equal(t, tt.wireType, wireType)
			assert.Equal(t, tt.subtype, subtype)
		})
	}
}
