package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/graph"
	"github.com/canvasflow/canvasflow/pkg/models"
)

func newModel(ids ...string) *graph.Model {
	workflow := &models.Workflow{ID: "wf-1", Name: "Test Workflow"}
	for _, id := range ids {
		workflow.Nodes = append(workflow.Nodes, &models.WorkflowNode{
			ID:   id,
			Type: models.NodeTypeCode,
			Name: "Node " + id,
		})
	}

	return graph.NewModel(workflow)
}

func TestConnect_MaintainsBothDirections(t *testing.T) {
	model := newModel("a", "b")

	model.Connect("a", "b")

	from := model.Workflow().NodeByID("a")
	to := model.Workflow().NodeByID("b")

	require.NotNil(t, from.Connections)
	require.NotNil(t, to.Connections)
	assert.Equal(t, []string{"b"}, from.Connections.Output)
	assert.Equal(t, []string{"a"}, to.Connections.Input)
}

func TestConnect_Deduplicates(t *testing.T) {
	model := newModel("a", "b")

	model.Connect("a", "b")
	model.Connect("a", "b")

	assert.Len(t, model.Workflow().NodeByID("a").Connections.Output, 1)
	assert.Len(t, model.Workflow().NodeByID("b").Connections.Input, 1)
}

func TestConnect_UnknownNodeIsNoOp(t *testing.T) {
	model := newModel("a")

	model.Connect("a", "ghost")

	assert.Nil(t, model.Workflow().NodeByID("a").Connections)
}

func TestDisconnect_DropsEmptyConnections(t *testing.T) {
	model := newModel("a", "b")
	model.Connect("a", "b")

	model.Disconnect("a", "b")

	assert.Nil(t, model.Workflow().NodeByID("a").Connections)
	assert.Nil(t, model.Workflow().NodeByID("b").Connections)
}

func TestDeleteNode_StripsAdjacency(t *testing.T) {
	model := newModel("a", "b", "c")
	model.Connect("a", "b")
	model.Connect("b", "c")

	model.DeleteNode("b")

	workflow := model.Workflow()
	require.Len(t, workflow.Nodes, 2)
	assert.Nil(t, workflow.NodeByID("b"))
	assert.Nil(t, workflow.NodeByID("a").Connections)
	assert.Nil(t, workflow.NodeByID("c").Connections)
}

func TestDeleteNode_KeepsUnrelatedEdges(t *testing.T) {
	model := newModel("a", "b", "c")
	model.Connect("a", "b")
	model.Connect("a", "c")

	model.DeleteNode("b")

	a := model.Workflow().NodeByID("a")
	require.NotNil(t, a.Connections)
	assert.Equal(t, []string{"c"}, a.Connections.Output)
}

func TestUpdateNode_MergesPartialUpdate(t *testing.T) {
	model := newModel("a")
	model.UpdateNode("a", graph.NodeUpdate{
		Config: map[string]any{"subtype": "code", "parameters": map[string]any{}},
	})

	name := "Renamed"
	model.UpdateNode("a", graph.NodeUpdate{
		Name:     &name,
		Position: &models.Position{X: 10, Y: 20},
		Config:   map[string]any{"language": "js"},
	})

	node := model.Workflow().NodeByID("a")
	assert.Equal(t, "Renamed", node.Name)
	assert.InDelta(t, 10.0, node.Position.X, 0)
	assert.Equal(t, "code", node.Config["subtype"])
	assert.Equal(t, "js", node.Config["language"])
}

func TestUpdateNode_UnknownIDIsNoOp(t *testing.T) {
	model := newModel("a")

	model.UpdateNode("ghost", graph.NodeUpdate{Name: ptr("x")})

	assert.Equal(t, "Node a", model.Workflow().NodeByID("a").Name)
}

func TestDeriveConnections_NodeOrder(t *testing.T) {
	model := newModel("a", "b", "c")
	model.Connect("b", "c")
	model.Connect("a", "b")
	model.Connect("a", "c")

	connections := graph.DeriveConnections(model.Workflow().Nodes)

	require.Len(t, connections, 3)
	assert.Equal(t, &models.Connection{From: "a", To: "b"}, connections[0])
	assert.Equal(t, &models.Connection{From: "a", To: "c"}, connections[1])
	assert.Equal(t, &models.Connection{From: "b", To: "c"}, connections[2])
}

func TestDeriveConnections_IgnoresStaleFlatList(t *testing.T) {
	model := newModel("a", "b")
	model.Connect("a", "b")
	model.Workflow().Connections = []*models.Connection{{From: "stale", To: "stale"}}

	model.SyncConnections()

	require.Len(t, model.Workflow().Connections, 1)
	assert.Equal(t, "a", model.Workflow().Connections[0].From)
}

func TestSyncConnections_EmptyGraphYieldsEmptyList(t *testing.T) {
	model := newModel("a")

	model.SyncConnections()

	assert.NotNil(t, model.Workflow().Connections)
	assert.Empty(t, model.Workflow().Connections)
}

func TestAddLog_NewestFirst(t *testing.T) {
	model := newModel()

	model.AddLog("info", "first")
	model.AddLog("success", "second")

	logs := model.Workflow().Logs
	require.Len(t, logs, 2)
	assert.Equal(t, "second", logs[0].Message)
	assert.Equal(t, "first", logs[1].Message)
	assert.NotEmpty(t, logs[0].ID)
	assert.False(t, logs[0].Timestamp.IsZero())
}

func TestDanglingEdges(t *testing.T) {
	model := newModel("a", "b")
	model.Connect("a", "b")
	model.Workflow().NodeByID("a").Connections.Output = append(
		model.Workflow().NodeByID("a").Connections.Output, "ghost",
	)

	dangling := graph.DanglingEdges(model.Workflow().Nodes)

	require.Len(t, dangling, 1)
	assert.Equal(t, &models.Connection{From: "a", To: "ghost"}, dangling[0])
}

func ptr(s string) *string { return &s }
