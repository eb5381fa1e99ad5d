package varsync_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/varsync"
)

func schemaWith(properties ...string) *models.Schema {
	schema := &models.Schema{Type: "object"}
	m := schema.EnsurePropertyMap()

	for _, p := range properties {
		m[p] = &models.SchemaProperty{Type: "string"}
	}

	return schema
}

func variableNames(vars []*models.CustomVariable) []string {
	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}

	return names
}

func TestVariableName(t *testing.T) {
	assert.Equal(t, "json.team", varsync.VariableName("team"))
}

func TestSyncOnMount_CreatesMissingVariables(t *testing.T) {
	node := &models.WorkflowNode{Name: "AI Summary", Type: models.NodeTypeHyperclova}
	node.SetOutputSchema(schemaWith("result", "score"))

	vars := varsync.SyncOnMount(node, nil)

	require.Len(t, vars, 2)
	assert.ElementsMatch(t, []string{"json.result", "json.score"}, variableNames(vars))

	for _, v := range vars {
		assert.NotEmpty(t, v.ID)
		assert.Contains(t, v.Description, "AI Summary")
	}
}

func TestSyncOnMount_NeverDeletes(t *testing.T) {
	node := &models.WorkflowNode{Name: "AI Summary", Type: models.NodeTypeHyperclova}
	node.SetOutputSchema(schemaWith("result"))

	orphan := &models.CustomVariable{ID: "v-1", Name: "json.old"}
	vars := varsync.SyncOnMount(node, []*models.CustomVariable{orphan})

	assert.ElementsMatch(t, []string{"json.old", "json.result"}, variableNames(vars))
}

func TestSyncOnMount_SkipsExisting(t *testing.T) {
	node := &models.WorkflowNode{Name: "AI Summary", Type: models.NodeTypeHyperclova}
	node.SetOutputSchema(schemaWith("result"))

	existing := &models.CustomVariable{ID: "v-1", Name: "json.result", Value: "cached"}
	vars := varsync.SyncOnMount(node, []*models.CustomVariable{existing})

	require.Len(t, vars, 1)
	assert.Equal(t, "cached", vars[0].Value)
}

func TestSyncOnMount_NoSchema(t *testing.T) {
	node := &models.WorkflowNode{Name: "Plain", Type: models.NodeTypeCode}

	assert.Nil(t, varsync.SyncOnMount(node, nil))
}

func TestAddProperty_GeneratesUniqueNameAndVariable(t *testing.T) {
	schema := schemaWith()

	name, vars := varsync.AddProperty(schema, nil, "AI Summary", true)

	assert.True(t, strings.HasPrefix(name, "field_"))
	require.Contains(t, schema.PropertyMap(), name)
	assert.Equal(t, "string", schema.PropertyMap()[name].Type)

	require.Len(t, vars, 1)
	assert.Equal(t, varsync.VariableName(name), vars[0].Name)
}

func TestAddProperty_InputSchemaCreatesNoVariable(t *testing.T) {
	schema := schemaWith()

	_, vars := varsync.AddProperty(schema, nil, "AI Summary", false)

	assert.Empty(t, vars)
}

func TestAddProperty_AvoidsNameCollisions(t *testing.T) {
	schema := schemaWith()

	first, vars := varsync.AddProperty(schema, nil, "AI Summary", true)
	second, vars := varsync.AddProperty(schema, vars, "AI Summary", true)

	assert.NotEqual(t, first, second)
	assert.Len(t, schema.PropertyMap(), 2)
	assert.Len(t, vars, 2)
}

func TestRemoveProperty_DropsSchemaAndVariable(t *testing.T) {
	schema := schemaWith("team", "score")
	vars := []*models.CustomVariable{
		{ID: "v-1", Name: "json.team"},
		{ID: "v-2", Name: "json.score"},
	}

	vars = varsync.RemoveProperty(schema, vars, "team", true)

	assert.NotContains(t, schema.PropertyMap(), "team")
	assert.Equal(t, []string{"json.score"}, variableNames(vars))
}

func TestRemoveProperty_InputSchemaKeepsVariables(t *testing.T) {
	schema := schemaWith("team")
	vars := []*models.CustomVariable{{ID: "v-1", Name: "json.team"}}

	vars = varsync.RemoveProperty(schema, vars, "team", false)

	assert.Len(t, vars, 1)
}

func TestRenameProperty_RenamesVariableInPlace(t *testing.T) {
	schema := schemaWith("field_123")
	vars := []*models.CustomVariable{{ID: "v-1", Name: "json.field_123", Value: "x"}}

	vars = varsync.RenameProperty(schema, vars, "field_123", "team", "number", true)

	require.Contains(t, schema.PropertyMap(), "team")
	assert.NotContains(t, schema.PropertyMap(), "field_123")
	assert.Equal(t, "number", schema.PropertyMap()["team"].Type)

	require.Len(t, vars, 1)
	assert.Equal(t, "json.team", vars[0].Name)
	assert.Equal(t, "v-1", vars[0].ID)
	assert.Equal(t, "x", vars[0].Value)
}

func TestRenameProperty_CollisionKeepsExistingVariable(t *testing.T) {
	schema := schemaWith("old")
	vars := []*models.CustomVariable{
		{ID: "v-1", Name: "json.old"},
		{ID: "v-2", Name: "json.team", Value: "kept"},
	}

	vars = varsync.RenameProperty(schema, vars, "old", "team", "", true)

	require.Len(t, vars, 1)
	assert.Equal(t, "v-2", vars[0].ID)
	assert.Equal(t, "kept", vars[0].Value)
}

func TestRenameProperty_MissingOldVariableCreatesNew(t *testing.T) {
	schema := schemaWith("old")

	vars := varsync.RenameProperty(schema, nil, "old", "team", "", true)

	require.Len(t, vars, 1)
	assert.Equal(t, "json.team", vars[0].Name)
}

func TestRenameProperty_DoesNotMutateOriginalVariable(t *testing.T) {
	original := &models.CustomVariable{ID: "v-1", Name: "json.old"}
	schema := schemaWith("old")

	varsync.RenameProperty(schema, []*models.CustomVariable{original}, "old", "team", "", true)

	assert.Equal(t, "json.old", original.Name)
}
