package payload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/payload"
)

func buildWorkflow() *models.Workflow {
	return &models.Workflow{
		ID:   "wf-1",
		Name: "Team Report",
		Nodes: []*models.WorkflowNode{
			{
				ID:       "n-1",
				Type:     models.NodeTypeSchedule,
				Name:     "Daily Trigger",
				Position: models.Position{X: 100, Y: 200},
				Config: map[string]any{
					"parameters": map[string]any{"timezone": "Asia/Seoul"},
				},
				Connections: &models.NodeConnections{Output: []string{"n-2"}},
			},
			{
				ID:          "n-2",
				Type:        models.NodeTypeHyperclova,
				Name:        "AI Summary",
				Connections: &models.NodeConnections{Input: []string{"n-1"}, Output: []string{"n-3"}},
			},
			{
				ID:          "n-3",
				Type:        models.NodeTypeDatabase,
				Name:        models.EndNodeName,
				Connections: &models.NodeConnections{Input: []string{"n-2"}},
			},
		},
	}
}

func TestBuild_NodesKeyedByNameWithWireTypes(t *testing.T) {
	p := payload.Build(buildWorkflow())

	require.Len(t, p.Nodes, 3)
	assert.Equal(t, "wf-1", p.ID)
	assert.Equal(t, "Team Report", p.Name)

	trigger := p.Nodes[0]
	assert.Equal(t, "Daily Trigger", trigger.Name)
	assert.Equal(t, "trigger", trigger.Type)
	assert.Equal(t, "schedule", trigger.Subtype)
	assert.Equal(t, [2]float64{100, 200}, trigger.Position)
	assert.Equal(t, map[string]any{"timezone": "Asia/Seoul"}, trigger.Parameters)

	ai := p.Nodes[1]
	assert.Equal(t, "ai-processing", ai.Type)
	assert.Equal(t, "hyperclova", ai.Subtype)
	assert.NotNil(t, ai.Parameters)

	db := p.Nodes[2]
	assert.Equal(t, "output", db.Type)
	assert.Equal(t, "database-writer", db.Subtype)
}

func TestBuild_ConfigOverridesWireType(t *testing.T) {
	workflow := buildWorkflow()
	workflow.Nodes[1].Config = map[string]any{
		"type":    "custom-type",
		"subtype": "custom-subtype",
	}

	p := payload.Build(workflow)

	assert.Equal(t, "custom-type", p.Nodes[1].Type)
	assert.Equal(t, "custom-subtype", p.Nodes[1].Subtype)
}

func TestBuild_EndNodeEdgesRoutedToSubGroup(t *testing.T) {
	p := payload.Build(buildWorkflow())

	require.Len(t, p.Connections, 2)

	trigger := p.Connections[0]
	assert.Equal(t, "Daily Trigger", trigger.Node)
	require.Len(t, trigger.Main, 1)
	assert.Equal(t, []models.ConnectionTarget{{Node: "AI Summary", Type: "main", Index: 0}}, trigger.Main[0])
	assert.Nil(t, trigger.Sub)

	ai := p.Connections[1]
	assert.Equal(t, "AI Summary", ai.Node)
	assert.Nil(t, ai.Main)
	require.Len(t, ai.Sub, 1)
	assert.Equal(t, []models.ConnectionTarget{{Node: models.EndNodeName, Type: "main", Index: 0}}, ai.Sub[0])
}

func TestBuild_DanglingTargetsSkipped(t *testing.T) {
	workflow := buildWorkflow()
	workflow.Nodes[0].Connections.Output = []string{"ghost"}

	p := payload.Build(workflow)

	require.Len(t, p.Connections, 1)
	assert.Equal(t, "AI Summary", p.Connections[0].Node)
}

func TestBuild_NoEdgesYieldsNoGroup(t *testing.T) {
	workflow := &models.Workflow{
		ID:    "wf-2",
		Name:  "Single",
		Nodes: []*models.WorkflowNode{{ID: "n-1", Type: models.NodeTypeWebhook, Name: "Hook"}},
	}

	p := payload.Build(workflow)

	assert.Empty(t, p.Connections)
	require.Len(t, p.Nodes, 1)
	assert.NotNil(t, p.Nodes[0].Parameters)
}

func TestBuild_UnmappedTypeFallsBackToItself(t *testing.T) {
	workflow := &models.Workflow{
		ID:    "wf-3",
		Name:  "Odd",
		Nodes: []*models.WorkflowNode{{ID: "n-1", Type: models.NodeType("mystery"), Name: "Mystery"}},
	}

	p := payload.Build(workflow)

	assert.Equal(t, "mystery", p.Nodes[0].Type)
	assert.Equal(t, "mystery", p.Nodes[0].Subtype)
}
